package businessflow

import (
	"fmt"
	"testing"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	testingutil "github.com/orgdesk/orgdesk/testing"
	"github.com/orgdesk/orgdesk/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		orgRepo := repository.NewOrganizationRepository(testDB.DB)
		branchRepo := repository.NewBranchRepository(testDB.DB)
		addressRepo := repository.NewAddressRepository(testDB.DB)
		phoneRepo := repository.NewPhoneNumberRepository(testDB.DB)
		orgTypeRepo := repository.NewOrganizationTypeRepository(testDB.DB)
		industryRepo := repository.NewIndustryTypeRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		orgFlow := NewOrganizationFlow(
			orgRepo, branchRepo, addressRepo, phoneRepo,
			orgTypeRepo, industryRepo, auditRepo, testDB.DB,
		)

		lookups, err := fixtures.SeedLookups()
		require.NoError(t, err)

		admin, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		ctx := testingutil.CreateTestContext()
		session := &Session{UserID: admin.UserID, Email: admin.Email, Name: admin.FullName()}
		metadata := NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("CreateAutoCreatesHeadOfficeBranch", func(t *testing.T) {
			data, err := orgFlow.CreateOrganization(ctx, &dto.CreateOrganizationRequest{
				OrganizationName:  "Globex Corporation",
				OrgPOCFirstName:   "Hank",
				OrgPOCLastName:    "Scorpio",
				OrgPrimaryEmailID: "hank@globex.example.com",
				OrgTypeID:         lookups.OrgType.OrgTypeID,
				IndustryTypeID:    lookups.Industry.IndustryTypeID,
				Address: &dto.AddressRequest{
					AddressLine1:  "1 Volcano Lane",
					AddressTypeID: &lookups.AddrType.AddressTypeID,
					CountryID:     &lookups.Country.CountryID,
				},
				PhoneNumber: &dto.PhoneNumberRequest{
					PhoneNumber:       "+14155550100",
					PhoneNumberTypeID: &lookups.PhoneType.PhoneNumberTypeID,
				},
			}, session, metadata)
			require.NoError(t, err)

			assert.Equal(t, dto.ChangeInserted, data.Changes.Status)
			org, ok := data.Changes.Entity.(*models.Organization)
			require.True(t, ok)
			assert.NotZero(t, org.OrgID)
			assert.Equal(t, &admin.UserID, org.CreatedBy)

			var branches []*models.Branch
			require.NoError(t, testDB.DB.Where("org_id = ?", org.OrgID).Find(&branches).Error)
			require.Len(t, branches, 1)
			assert.True(t, utils.IsTrue(branches[0].IsOrgBranch))
			assert.Equal(t, org.OrganizationName, branches[0].OrgBranchName)

			// the address and phone land on both the organization and its head office branch
			var orgAddresses, branchAddresses []*models.Address
			require.NoError(t, testDB.DB.Where("organization_id = ?", org.OrgID).Find(&orgAddresses).Error)
			require.NoError(t, testDB.DB.Where("org_branch_id = ?", branches[0].OrgBranchID).Find(&branchAddresses).Error)
			assert.Len(t, orgAddresses, 1)
			assert.Len(t, branchAddresses, 1)
			assert.Equal(t, "1 Volcano Lane", orgAddresses[0].AddressLine1)
			assert.Equal(t, "1 Volcano Lane", branchAddresses[0].AddressLine1)

			var orgPhones []*models.PhoneNumber
			require.NoError(t, testDB.DB.Where("organization_id = ?", org.OrgID).Find(&orgPhones).Error)
			require.Len(t, orgPhones, 1)
			assert.Equal(t, "+14155550100", orgPhones[0].PhoneNumber)
		})

		t.Run("CreateRejectsUnknownClassification", func(t *testing.T) {
			_, err := orgFlow.CreateOrganization(ctx, &dto.CreateOrganizationRequest{
				OrganizationName:  "Bad Classification Inc",
				OrgPOCFirstName:   "No",
				OrgPOCLastName:    "Body",
				OrgPrimaryEmailID: "nobody@bad.example.com",
				OrgTypeID:         999999,
				IndustryTypeID:    lookups.Industry.IndustryTypeID,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsOrgTypeNotFound(err))

			_, err = orgFlow.CreateOrganization(ctx, &dto.CreateOrganizationRequest{
				OrganizationName:  "Bad Classification Inc",
				OrgPOCFirstName:   "No",
				OrgPOCLastName:    "Body",
				OrgPrimaryEmailID: "nobody@bad.example.com",
				OrgTypeID:         lookups.OrgType.OrgTypeID,
				IndustryTypeID:    999999,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsIndustryTypeNotFound(err))
		})

		t.Run("UpdatePatchesOnlyPresentFields", func(t *testing.T) {
			org, err := fixtures.CreateTestOrganization(lookups)
			require.NoError(t, err)

			newName := "Renamed Widgets"
			data, err := orgFlow.UpdateOrganization(ctx, &dto.UpdateOrganizationRequest{
				OrgID:            org.OrgID,
				OrganizationName: &newName,
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangePatched, data.Changes.Status)

			stored, err := orgFlow.GetOrganization(ctx, org.OrgID)
			require.NoError(t, err)
			assert.Equal(t, newName, stored.OrganizationName)
			assert.Equal(t, org.OrgPrimaryEmailID, stored.OrgPrimaryEmailID)
			assert.Equal(t, &admin.UserID, stored.UpdatedBy)
		})

		t.Run("GetUnknownIsNotFound", func(t *testing.T) {
			_, err := orgFlow.GetOrganization(ctx, 999999)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})

		t.Run("DeleteSoftDeletes", func(t *testing.T) {
			org, err := fixtures.CreateTestOrganization(lookups)
			require.NoError(t, err)

			data, err := orgFlow.DeleteOrganization(ctx, &dto.DeleteOrganizationRequest{OrgID: org.OrgID}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeSoftDeleted, data.Changes.Status)
			require.NotNil(t, data.Changes.Affected)
			assert.Equal(t, int64(1), *data.Changes.Affected)

			_, err = orgFlow.GetOrganization(ctx, org.OrgID)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))

			// the row survives, only deactivated
			var row models.Organization
			require.NoError(t, testDB.DB.Where("org_id = ?", org.OrgID).First(&row).Error)
			assert.False(t, utils.IsTrue(row.IsActive))
		})

		t.Run("DeleteIsIdempotent", func(t *testing.T) {
			org, err := fixtures.CreateTestOrganization(lookups)
			require.NoError(t, err)

			_, err = orgFlow.DeleteOrganization(ctx, &dto.DeleteOrganizationRequest{OrgID: org.OrgID}, session, metadata)
			require.NoError(t, err)

			// deleting the already-inactive row still succeeds
			data, err := orgFlow.DeleteOrganization(ctx, &dto.DeleteOrganizationRequest{OrgID: org.OrgID}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeSoftDeleted, data.Changes.Status)

			var row models.Organization
			require.NoError(t, testDB.DB.Where("org_id = ?", org.OrgID).First(&row).Error)
			assert.False(t, utils.IsTrue(row.IsActive))
		})

		t.Run("DeleteUnknownIsNotFound", func(t *testing.T) {
			_, err := orgFlow.DeleteOrganization(ctx, &dto.DeleteOrganizationRequest{OrgID: 999999}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})

		t.Run("BulkDeleteToleratesDuplicatesAndUnknowns", func(t *testing.T) {
			first, err := fixtures.CreateTestOrganization(lookups)
			require.NoError(t, err)
			second, err := fixtures.CreateTestOrganization(lookups)
			require.NoError(t, err)

			data, err := orgFlow.BulkDeleteOrganizations(ctx, &dto.BulkDeleteRequest{
				IDs: []uint{first.OrgID, first.OrgID, second.OrgID, 999999},
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeSoftDeleted, data.Changes.Status)
			require.NotNil(t, data.Changes.Affected)
			assert.Equal(t, int64(2), *data.Changes.Affected)
		})

		t.Run("ListWindowsAndCounts", func(t *testing.T) {
			for i := 0; i < 12; i++ {
				_, err := orgFlow.CreateOrganization(ctx, &dto.CreateOrganizationRequest{
					OrganizationName:  fmt.Sprintf("Windowed Org %02d", i),
					OrgPOCFirstName:   "Page",
					OrgPOCLastName:    "Walker",
					OrgPrimaryEmailID: fmt.Sprintf("windowed.%02d@example.com", i),
					OrgTypeID:         lookups.OrgType.OrgTypeID,
					IndustryTypeID:    lookups.Industry.IndustryTypeID,
				}, session, metadata)
				require.NoError(t, err)
			}

			firstPage, err := orgFlow.ListOrganizations(ctx, &dto.ListParams{Search: "Windowed Org", Page: "1"})
			require.NoError(t, err)
			assert.Equal(t, int64(12), firstPage.Count)
			assert.Len(t, firstPage.Rows.([]*models.Organization), utils.PageSize)

			secondPage, err := orgFlow.ListOrganizations(ctx, &dto.ListParams{Search: "Windowed Org", Page: "2"})
			require.NoError(t, err)
			assert.Equal(t, int64(12), secondPage.Count)
			assert.Len(t, secondPage.Rows.([]*models.Organization), 2)

			unpaged, err := orgFlow.ListOrganizations(ctx, &dto.ListParams{Search: "Windowed Org", Page: "abc"})
			require.NoError(t, err)
			assert.Len(t, unpaged.Rows.([]*models.Organization), 12, "a non-numeric page lists everything")

			all, err := orgFlow.ListOrganizations(ctx, &dto.ListParams{Search: "Windowed Org", Page: "1", All: true})
			require.NoError(t, err)
			assert.Len(t, all.Rows.([]*models.Organization), 12)
		})

		t.Run("ListSortsByWhitelistedColumn", func(t *testing.T) {
			rows, err := orgFlow.ListOrganizations(ctx, &dto.ListParams{
				Search:    "Windowed Org",
				OrderBy:   "organizationName",
				SortOrder: "asc",
				All:       true,
			})
			require.NoError(t, err)

			orgs := rows.Rows.([]*models.Organization)
			require.NotEmpty(t, orgs)
			assert.Equal(t, "Windowed Org 00", orgs[0].OrganizationName)

			rows, err = orgFlow.ListOrganizations(ctx, &dto.ListParams{
				Search:    "Windowed Org",
				OrderBy:   "organizationName",
				SortOrder: "desc",
				All:       true,
			})
			require.NoError(t, err)
			assert.Equal(t, "Windowed Org 11", rows.Rows.([]*models.Organization)[0].OrganizationName)
		})

		t.Run("ListFiltersByValueSet", func(t *testing.T) {
			rows, err := orgFlow.ListOrganizations(ctx, &dto.ListParams{
				Filters: map[string][]string{
					"organizationName": {"Windowed Org 03", "Windowed Org 07"},
				},
				All: true,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(2), rows.Count)

			// unknown filter names are ignored, never an error
			rows, err = orgFlow.ListOrganizations(ctx, &dto.ListParams{
				Search:  "Windowed Org",
				Filters: map[string][]string{"noSuchFilter": {"x"}},
				All:     true,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(12), rows.Count)
		})

		return nil
	})
	require.NoError(t, err)
}
