package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codelever/company-registry-go/internal/domain/auth"
	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/handler/http/response"
	"github.com/codelever/company-registry-go/internal/pkg/validator"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq company.CreateCompanyRequest

	if err := validator.DecodeJSONStrict(r.Body, &createReq); err != nil {
		if errors.Is(err, validator.ErrMalformedBody) {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	requester, ok := requesterID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	created, err := c.companyService.Create(r.Context(), requester, createReq)
	if err != nil {
		slog.Error("Create company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", created)
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "companyID")
	if !ok {
		response.HandleError(w, company.ErrCompanyNotFound)
		return
	}

	found, err := c.companyService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	companies, total, err := c.companyService.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("List companies service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, companies, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages(total, limit),
	})
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "companyID")
	if !ok {
		response.HandleError(w, company.ErrCompanyNotFound)
		return
	}

	if err := c.companyService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company deleted", nil)
}
