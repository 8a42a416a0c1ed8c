package handlers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/middleware"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
)

// LookupHandler handles the lookup table endpoints: organization types,
// industry types, countries, states, cities, phone number types and
// address types
type LookupHandler struct {
	lookupFlow businessflow.LookupFlow
	validator  *validator.Validate
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(lookupFlow businessflow.LookupFlow) *LookupHandler {
	return &LookupHandler{
		lookupFlow: lookupFlow,
		validator:  newValidator(),
	}
}

func (h *LookupHandler) parseID(c fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Organization types

// ListOrganizationTypes returns a page of organization types
// @Summary List organization types
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/organization-types/list [get]
func (h *LookupHandler) ListOrganizationTypes(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "organization-types-list")
	data, err := h.lookupFlow.ListOrganizationTypes(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "organization-types-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetOrganizationType returns a single organization type
// @Summary Get organization type
// @Tags lookups
// @Produce json
// @Param id path int true "Organization type ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/organization-types/{id} [get]
func (h *LookupHandler) GetOrganizationType(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "organization-types-get")
	entry, err := h.lookupFlow.GetOrganizationType(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "organization-types-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreateOrganizationType creates an organization type
// @Summary Create organization type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationTypeRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/organization-types/create [post]
func (h *LookupHandler) CreateOrganizationType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreateOrganizationTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "organization-types-create")
	data, err := h.lookupFlow.CreateOrganizationType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "organization-types-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdateOrganizationType patches an organization type
// @Summary Update organization type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdateOrganizationTypeRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/organization-types/update [post]
func (h *LookupHandler) UpdateOrganizationType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdateOrganizationTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "organization-types-update")
	data, err := h.lookupFlow.UpdateOrganizationType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "organization-types-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Industry types

// ListIndustryTypes returns a page of industry types
// @Summary List industry types
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/industry-types/list [get]
func (h *LookupHandler) ListIndustryTypes(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "industry-types-list")
	data, err := h.lookupFlow.ListIndustryTypes(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "industry-types-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetIndustryType returns a single industry type
// @Summary Get industry type
// @Tags lookups
// @Produce json
// @Param id path int true "Industry type ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/industry-types/{id} [get]
func (h *LookupHandler) GetIndustryType(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "industry-types-get")
	entry, err := h.lookupFlow.GetIndustryType(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "industry-types-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreateIndustryType creates an industry type, optionally nested under a
// parent. Parent chains are validated against cycles.
// @Summary Create industry type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreateIndustryTypeRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/industry-types/create [post]
func (h *LookupHandler) CreateIndustryType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreateIndustryTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "industry-types-create")
	data, err := h.lookupFlow.CreateIndustryType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "industry-types-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdateIndustryType patches an industry type
// @Summary Update industry type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdateIndustryTypeRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/industry-types/update [post]
func (h *LookupHandler) UpdateIndustryType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdateIndustryTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "industry-types-update")
	data, err := h.lookupFlow.UpdateIndustryType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "industry-types-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Countries

// ListCountries returns a page of countries
// @Summary List countries
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/countries/list [get]
func (h *LookupHandler) ListCountries(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "countries-list")
	data, err := h.lookupFlow.ListCountries(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "countries-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetCountry returns a single country
// @Summary Get country
// @Tags lookups
// @Produce json
// @Param id path int true "Country ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/countries/{id} [get]
func (h *LookupHandler) GetCountry(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "countries-get")
	entry, err := h.lookupFlow.GetCountry(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "countries-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreateCountry creates a country
// @Summary Create country
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreateCountryRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/countries/create [post]
func (h *LookupHandler) CreateCountry(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreateCountryRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "countries-create")
	data, err := h.lookupFlow.CreateCountry(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "countries-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdateCountry patches a country
// @Summary Update country
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdateCountryRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/countries/update [post]
func (h *LookupHandler) UpdateCountry(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdateCountryRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "countries-update")
	data, err := h.lookupFlow.UpdateCountry(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "countries-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// States

// ListCountryStates returns a page of states
// @Summary List states
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/states/list [get]
func (h *LookupHandler) ListCountryStates(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "states-list")
	data, err := h.lookupFlow.ListCountryStates(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "states-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetCountryState returns a single state
// @Summary Get state
// @Tags lookups
// @Produce json
// @Param id path int true "State ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/states/{id} [get]
func (h *LookupHandler) GetCountryState(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "states-get")
	entry, err := h.lookupFlow.GetCountryState(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "states-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreateCountryState creates a state under an existing country
// @Summary Create state
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreateCountryStateRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/states/create [post]
func (h *LookupHandler) CreateCountryState(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreateCountryStateRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "states-create")
	data, err := h.lookupFlow.CreateCountryState(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "states-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdateCountryState patches a state
// @Summary Update state
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdateCountryStateRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/states/update [post]
func (h *LookupHandler) UpdateCountryState(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdateCountryStateRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "states-update")
	data, err := h.lookupFlow.UpdateCountryState(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "states-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Cities

// ListCities returns a page of cities
// @Summary List cities
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/cities/list [get]
func (h *LookupHandler) ListCities(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "cities-list")
	data, err := h.lookupFlow.ListCities(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "cities-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetCity returns a single city
// @Summary Get city
// @Tags lookups
// @Produce json
// @Param id path int true "City ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/cities/{id} [get]
func (h *LookupHandler) GetCity(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "cities-get")
	entry, err := h.lookupFlow.GetCity(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "cities-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreateCity creates a city under an existing state
// @Summary Create city
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreateCityRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/cities/create [post]
func (h *LookupHandler) CreateCity(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreateCityRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "cities-create")
	data, err := h.lookupFlow.CreateCity(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "cities-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdateCity patches a city
// @Summary Update city
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdateCityRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/cities/update [post]
func (h *LookupHandler) UpdateCity(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdateCityRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "cities-update")
	data, err := h.lookupFlow.UpdateCity(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "cities-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Phone number types

// ListPhoneNumberTypes returns a page of phone number types
// @Summary List phone number types
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/phone-number-types/list [get]
func (h *LookupHandler) ListPhoneNumberTypes(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "phone-number-types-list")
	data, err := h.lookupFlow.ListPhoneNumberTypes(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "phone-number-types-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetPhoneNumberType returns a single phone number type
// @Summary Get phone number type
// @Tags lookups
// @Produce json
// @Param id path int true "Phone number type ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/phone-number-types/{id} [get]
func (h *LookupHandler) GetPhoneNumberType(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "phone-number-types-get")
	entry, err := h.lookupFlow.GetPhoneNumberType(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "phone-number-types-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreatePhoneNumberType creates a phone number type
// @Summary Create phone number type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreatePhoneNumberTypeRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/phone-number-types/create [post]
func (h *LookupHandler) CreatePhoneNumberType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreatePhoneNumberTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "phone-number-types-create")
	data, err := h.lookupFlow.CreatePhoneNumberType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "phone-number-types-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdatePhoneNumberType patches a phone number type
// @Summary Update phone number type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdatePhoneNumberTypeRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/phone-number-types/update [post]
func (h *LookupHandler) UpdatePhoneNumberType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdatePhoneNumberTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "phone-number-types-update")
	data, err := h.lookupFlow.UpdatePhoneNumberType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "phone-number-types-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Address types

// ListAddressTypes returns a page of address types
// @Summary List address types
// @Tags lookups
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/address-types/list [get]
func (h *LookupHandler) ListAddressTypes(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "address-types-list")
	data, err := h.lookupFlow.ListAddressTypes(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "address-types-list", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// GetAddressType returns a single address type
// @Summary Get address type
// @Tags lookups
// @Produce json
// @Param id path int true "Address type ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/address-types/{id} [get]
func (h *LookupHandler) GetAddressType(c fiber.Ctx) error {
	startedAt := time.Now()
	id, ok := h.parseID(c, "id")
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := createRequestContext(c, "address-types-get")
	entry, err := h.lookupFlow.GetAddressType(ctx, id)
	if err != nil {
		return BusinessErrorResponse(c, "address-types-get", err)
	}
	return SuccessResponse(c, startedAt, entry)
}

// CreateAddressType creates an address type
// @Summary Create address type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.CreateAddressTypeRequest true "Entry data"
// @Success 200 {object} dto.APIResponse
// @Router /api/lookup/address-types/create [post]
func (h *LookupHandler) CreateAddressType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.CreateAddressTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "address-types-create")
	data, err := h.lookupFlow.CreateAddressType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "address-types-create", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// UpdateAddressType patches an address type
// @Summary Update address type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body dto.UpdateAddressTypeRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/lookup/address-types/update [post]
func (h *LookupHandler) UpdateAddressType(c fiber.Ctx) error {
	startedAt := time.Now()
	var request dto.UpdateAddressTypeRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}
	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "address-types-update")
	data, err := h.lookupFlow.UpdateAddressType(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "address-types-update", err)
	}
	return SuccessResponse(c, startedAt, data)
}
