package dto

// CreateBranchRequest creates a branch under an organization
type CreateBranchRequest struct {
	OrgID          uint                `json:"orgId" validate:"required"`
	OrgBranchName  string              `json:"orgBranchName" validate:"required,max=255"`
	OrgBranchNote  *string             `json:"orgBranchNote,omitempty"`
	IndustryTypeID *uint               `json:"industryTypeId,omitempty"`
	Address        *AddressRequest     `json:"address,omitempty"`
	PhoneNumber    *PhoneNumberRequest `json:"phoneNumber,omitempty"`
}

// UpdateBranchRequest patches an existing branch
type UpdateBranchRequest struct {
	OrgBranchID    uint                `json:"orgBranchId" validate:"required"`
	OrgBranchName  *string             `json:"orgBranchName,omitempty" validate:"omitempty,max=255"`
	OrgBranchNote  *string             `json:"orgBranchNote,omitempty"`
	IndustryTypeID *uint               `json:"industryTypeId,omitempty"`
	Address        *AddressRequest     `json:"address,omitempty"`
	PhoneNumber    *PhoneNumberRequest `json:"phoneNumber,omitempty"`
}

// DeleteBranchRequest soft-deletes one branch
type DeleteBranchRequest struct {
	OrgBranchID uint `json:"orgBranchId" validate:"required"`
}
