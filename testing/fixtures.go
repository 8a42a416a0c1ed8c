// Package testing provides test utilities and database setup for testing the directory service
package testing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mathrand "math/rand"

	"github.com/google/uuid"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// SeedLookups creates one row in every lookup table and returns them. Most
// directory fixtures hang off these.
type SeededLookups struct {
	OrgType   *models.OrganizationType
	Industry  *models.IndustryType
	Country   *models.Country
	State     *models.CountryState
	City      *models.City
	PhoneType *models.PhoneNumberType
	AddrType  *models.AddressType
}

func (tf *TestFixtures) SeedLookups() (*SeededLookups, error) {
	orgType := &models.OrganizationType{OrgType: "Private Limited", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(orgType).Error; err != nil {
		return nil, fmt.Errorf("failed to create organization type: %w", err)
	}

	industry := &models.IndustryType{IndustryType: "Software", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(industry).Error; err != nil {
		return nil, fmt.Errorf("failed to create industry type: %w", err)
	}

	country := &models.Country{Country: "India", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(country).Error; err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}

	state := &models.CountryState{CountryID: country.CountryID, CountryState: "Karnataka", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(state).Error; err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}

	city := &models.City{CountryStateID: state.CountryStateID, City: "Bengaluru", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(city).Error; err != nil {
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	phoneType := &models.PhoneNumberType{PhoneNumberType: "Office", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(phoneType).Error; err != nil {
		return nil, fmt.Errorf("failed to create phone number type: %w", err)
	}

	addrType := &models.AddressType{AddressType: "Head Office", IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(addrType).Error; err != nil {
		return nil, fmt.Errorf("failed to create address type: %w", err)
	}

	return &SeededLookups{
		OrgType:   orgType,
		Industry:  industry,
		Country:   country,
		State:     state,
		City:      city,
		PhoneType: phoneType,
		AddrType:  addrType,
	}, nil
}

// CreateTestUser creates an active admin user with a bcrypt-hashed password.
// The plaintext password is always "TestPass123".
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	suffix := mathrand.Intn(10000000)
	user := &models.User{
		FirstName:    "Jane",
		LastName:     "Admin",
		Email:        fmt.Sprintf("jane.admin.%d@example.com", suffix),
		UserPassword: string(hashedPassword),
		PhoneNumber:  utils.ToPtr(fmt.Sprintf("+1415555%04d", suffix%10000)),
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestOrganization creates an organization tied to the seeded lookups
func (tf *TestFixtures) CreateTestOrganization(lookups *SeededLookups) (*models.Organization, error) {
	suffix := mathrand.Intn(10000000)
	org := &models.Organization{
		OrganizationName:  fmt.Sprintf("Acme Widgets %d", suffix),
		OrgPOCFirstName:   "Ada",
		OrgPOCLastName:    "Lovelace",
		OrgPrimaryEmailID: fmt.Sprintf("contact.%d@acme.example.com", suffix),
		OrgTypeID:         lookups.OrgType.OrgTypeID,
		IndustryTypeID:    lookups.Industry.IndustryTypeID,
		IsActive:          utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(org).Error; err != nil {
		return nil, fmt.Errorf("failed to create test organization: %w", err)
	}

	return org, nil
}

// CreateTestBranch creates a branch under the given organization
func (tf *TestFixtures) CreateTestBranch(orgID uint, isHeadOffice bool) (*models.Branch, error) {
	branch := &models.Branch{
		OrgID:         orgID,
		OrgBranchName: fmt.Sprintf("Branch %d", mathrand.Intn(10000000)),
		IsOrgBranch:   utils.ToPtr(isHeadOffice),
		IsActive:      utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(branch).Error; err != nil {
		return nil, fmt.Errorf("failed to create test branch: %w", err)
	}

	return branch, nil
}

// GenerateSecureToken returns a URL-safe random token
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateTestSession creates an active session for the given user
func (tf *TestFixtures) CreateTestSession(user *models.User) (*models.UserSession, error) {
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	session := &models.UserSession{
		SessionToken: uuid.New().String(),
		UserID:       user.UserID,
		UserEmail:    user.Email,
		UserName:     user.FullName(),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		ExpiresAt:    utils.UTCNowAdd(utils.SessionTimeout),
	}

	if err := tf.DB.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}

	return session, nil
}

// CreateExpiredSession creates a session whose expiry is already in the past
func (tf *TestFixtures) CreateExpiredSession(user *models.User) (*models.UserSession, error) {
	session := &models.UserSession{
		SessionToken: uuid.New().String(),
		UserID:       user.UserID,
		UserEmail:    user.Email,
		UserName:     user.FullName(),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNowAdd(-2 * utils.SessionTimeout),
		ExpiresAt:    utils.UTCNowAdd(-utils.SessionTimeout),
	}

	if err := tf.DB.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create expired session: %w", err)
	}

	return session, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(userID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
