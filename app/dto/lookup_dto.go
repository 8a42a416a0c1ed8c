package dto

// CreateOrganizationTypeRequest creates an organization type lookup entry
type CreateOrganizationTypeRequest struct {
	OrgType string `json:"orgType" validate:"required,max=100"`
}

// UpdateOrganizationTypeRequest patches an organization type lookup entry
type UpdateOrganizationTypeRequest struct {
	OrgTypeID uint   `json:"orgTypeId" validate:"required"`
	OrgType   string `json:"orgType" validate:"required,max=100"`
}

// CreateIndustryTypeRequest creates an industry type, optionally nested
// under a parent industry type
type CreateIndustryTypeRequest struct {
	IndustryType         string `json:"industryType" validate:"required,max=100"`
	ParentIndustryTypeID *uint  `json:"parentIndustryTypeId,omitempty"`
}

// UpdateIndustryTypeRequest patches an industry type
type UpdateIndustryTypeRequest struct {
	IndustryTypeID       uint    `json:"industryTypeId" validate:"required"`
	IndustryType         *string `json:"industryType,omitempty" validate:"omitempty,max=100"`
	ParentIndustryTypeID *uint   `json:"parentIndustryTypeId,omitempty"`
}

// CreateCountryRequest creates a country lookup entry
type CreateCountryRequest struct {
	Country    string `json:"country" validate:"required,max=100"`
	LanguageID *uint  `json:"languageId,omitempty"`
}

// UpdateCountryRequest patches a country lookup entry
type UpdateCountryRequest struct {
	CountryID  uint    `json:"countryId" validate:"required"`
	Country    *string `json:"country,omitempty" validate:"omitempty,max=100"`
	LanguageID *uint   `json:"languageId,omitempty"`
}

// CreateCountryStateRequest creates a state under a country
type CreateCountryStateRequest struct {
	CountryID    uint   `json:"countryId" validate:"required"`
	CountryState string `json:"countryState" validate:"required,max=100"`
	LanguageID   *uint  `json:"languageId,omitempty"`
}

// UpdateCountryStateRequest patches a state lookup entry
type UpdateCountryStateRequest struct {
	CountryStateID uint    `json:"countryStateId" validate:"required"`
	CountryID      *uint   `json:"countryId,omitempty"`
	CountryState   *string `json:"countryState,omitempty" validate:"omitempty,max=100"`
	LanguageID     *uint   `json:"languageId,omitempty"`
}

// CreateCityRequest creates a city under a state
type CreateCityRequest struct {
	CountryStateID uint   `json:"countryStateId" validate:"required"`
	City           string `json:"city" validate:"required,max=100"`
	LanguageID     *uint  `json:"languageId,omitempty"`
}

// UpdateCityRequest patches a city lookup entry
type UpdateCityRequest struct {
	CityID         uint    `json:"cityId" validate:"required"`
	CountryStateID *uint   `json:"countryStateId,omitempty"`
	City           *string `json:"city,omitempty" validate:"omitempty,max=100"`
	LanguageID     *uint   `json:"languageId,omitempty"`
}

// CreatePhoneNumberTypeRequest creates a phone number type lookup entry
type CreatePhoneNumberTypeRequest struct {
	PhoneNumberType string `json:"phoneNumberType" validate:"required,max=100"`
	LanguageID      *uint  `json:"languageId,omitempty"`
}

// UpdatePhoneNumberTypeRequest patches a phone number type lookup entry
type UpdatePhoneNumberTypeRequest struct {
	PhoneNumberTypeID uint    `json:"phoneNumberTypeId" validate:"required"`
	PhoneNumberType   *string `json:"phoneNumberType,omitempty" validate:"omitempty,max=100"`
	LanguageID        *uint   `json:"languageId,omitempty"`
}

// CreateAddressTypeRequest creates an address type lookup entry
type CreateAddressTypeRequest struct {
	AddressType string `json:"addressType" validate:"required,max=100"`
}

// UpdateAddressTypeRequest patches an address type lookup entry
type UpdateAddressTypeRequest struct {
	AddressTypeID uint    `json:"addressTypeId" validate:"required"`
	AddressType   *string `json:"addressType,omitempty" validate:"omitempty,max=100"`
}
