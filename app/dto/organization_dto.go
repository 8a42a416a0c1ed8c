package dto

// AddressRequest is the nested address payload on create/update requests
type AddressRequest struct {
	AddressLine1   string  `json:"addressLine1" validate:"required,max=255"`
	AddressLine2   *string `json:"addressLine2,omitempty" validate:"omitempty,max=255"`
	AddressLine3   *string `json:"addressLine3,omitempty" validate:"omitempty,max=255"`
	AddressTypeID  *uint   `json:"addressTypeId,omitempty"`
	CountryID      *uint   `json:"countryId,omitempty"`
	CountryStateID *uint   `json:"countryStateId,omitempty"`
	CityID         *uint   `json:"cityId,omitempty"`
}

// PhoneNumberRequest is the nested phone payload on create/update requests
type PhoneNumberRequest struct {
	PhoneNumber       string `json:"phoneNumber" validate:"required,max=30"`
	PhoneNumberTypeID *uint  `json:"phoneNumberTypeId,omitempty"`
}

// CreateOrganizationRequest creates an organization together with its
// address, phone number and head office branch
type CreateOrganizationRequest struct {
	OrganizationName  string              `json:"organizationName" validate:"required,max=255"`
	OrgPOCFirstName   string              `json:"orgPOCFirstName" validate:"required,max=100"`
	OrgPOCMiddleName  *string             `json:"orgPOCMiddleName,omitempty" validate:"omitempty,max=100"`
	OrgPOCLastName    string              `json:"orgPOCLastName" validate:"required,max=100"`
	OrgPrimaryEmailID string              `json:"orgPrimaryEmailId" validate:"required,email,max=255"`
	OrgTypeID         uint                `json:"orgTypeId" validate:"required"`
	IndustryTypeID    uint                `json:"industryTypeId" validate:"required"`
	IndustrySubTypeID *uint               `json:"industrySubTypeId,omitempty"`
	Address           *AddressRequest     `json:"address,omitempty"`
	PhoneNumber       *PhoneNumberRequest `json:"phoneNumber,omitempty"`
}

// UpdateOrganizationRequest patches an existing organization
type UpdateOrganizationRequest struct {
	OrgID             uint                `json:"orgId" validate:"required"`
	OrganizationName  *string             `json:"organizationName,omitempty" validate:"omitempty,max=255"`
	OrgPOCFirstName   *string             `json:"orgPOCFirstName,omitempty" validate:"omitempty,max=100"`
	OrgPOCMiddleName  *string             `json:"orgPOCMiddleName,omitempty" validate:"omitempty,max=100"`
	OrgPOCLastName    *string             `json:"orgPOCLastName,omitempty" validate:"omitempty,max=100"`
	OrgPrimaryEmailID *string             `json:"orgPrimaryEmailId,omitempty" validate:"omitempty,email,max=255"`
	OrgTypeID         *uint               `json:"orgTypeId,omitempty"`
	IndustryTypeID    *uint               `json:"industryTypeId,omitempty"`
	IndustrySubTypeID *uint               `json:"industrySubTypeId,omitempty"`
	Address           *AddressRequest     `json:"address,omitempty"`
	PhoneNumber       *PhoneNumberRequest `json:"phoneNumber,omitempty"`
}

// DeleteOrganizationRequest soft-deletes one organization
type DeleteOrganizationRequest struct {
	OrgID uint `json:"orgId" validate:"required"`
}

// BulkDeleteRequest soft-deletes a set of rows by id. Duplicates and
// unknown ids are tolerated, only distinct existing rows are counted.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,required"`
}
