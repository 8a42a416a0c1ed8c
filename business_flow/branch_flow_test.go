package businessflow

import (
	"testing"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	testingutil "github.com/orgdesk/orgdesk/testing"
	"github.com/orgdesk/orgdesk/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		branchRepo := repository.NewBranchRepository(testDB.DB)
		orgRepo := repository.NewOrganizationRepository(testDB.DB)
		addressRepo := repository.NewAddressRepository(testDB.DB)
		phoneRepo := repository.NewPhoneNumberRepository(testDB.DB)
		industryRepo := repository.NewIndustryTypeRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		branchFlow := NewBranchFlow(
			branchRepo, orgRepo, addressRepo, phoneRepo,
			industryRepo, auditRepo, testDB.DB,
		)

		lookups, err := fixtures.SeedLookups()
		require.NoError(t, err)

		org, err := fixtures.CreateTestOrganization(lookups)
		require.NoError(t, err)

		admin, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		ctx := testingutil.CreateTestContext()
		session := &Session{UserID: admin.UserID, Email: admin.Email, Name: admin.FullName()}
		metadata := NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("CreateUnderAnOrganization", func(t *testing.T) {
			data, err := branchFlow.CreateBranch(ctx, &dto.CreateBranchRequest{
				OrgID:          org.OrgID,
				OrgBranchName:  "Downtown Office",
				IndustryTypeID: &lookups.Industry.IndustryTypeID,
				Address: &dto.AddressRequest{
					AddressLine1: "42 Market Street",
					CityID:       &lookups.City.CityID,
				},
				PhoneNumber: &dto.PhoneNumberRequest{
					PhoneNumber:       "+14155550142",
					PhoneNumberTypeID: &lookups.PhoneType.PhoneNumberTypeID,
				},
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeInserted, data.Changes.Status)

			branch, ok := data.Changes.Entity.(*models.Branch)
			require.True(t, ok)
			assert.Equal(t, org.OrgID, branch.OrgID)
			assert.False(t, utils.IsTrue(branch.IsOrgBranch), "a manually created branch is never the head office")

			var addresses []*models.Address
			require.NoError(t, testDB.DB.Where("org_branch_id = ?", branch.OrgBranchID).Find(&addresses).Error)
			assert.Len(t, addresses, 1)
		})

		t.Run("CreateUnderUnknownOrganization", func(t *testing.T) {
			_, err := branchFlow.CreateBranch(ctx, &dto.CreateBranchRequest{
				OrgID:         999999,
				OrgBranchName: "Orphan Office",
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsOrganizationNotFound(err))
		})

		t.Run("CreateWithUnknownIndustryType", func(t *testing.T) {
			missing := uint(999999)
			_, err := branchFlow.CreateBranch(ctx, &dto.CreateBranchRequest{
				OrgID:          org.OrgID,
				OrgBranchName:  "Misfiled Office",
				IndustryTypeID: &missing,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsIndustryTypeNotFound(err))
		})

		t.Run("UpdateAndDelete", func(t *testing.T) {
			branch, err := fixtures.CreateTestBranch(org.OrgID, false)
			require.NoError(t, err)

			note := "moved to the new building"
			data, err := branchFlow.UpdateBranch(ctx, &dto.UpdateBranchRequest{
				OrgBranchID:   branch.OrgBranchID,
				OrgBranchNote: &note,
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangePatched, data.Changes.Status)

			stored, err := branchFlow.GetBranch(ctx, branch.OrgBranchID)
			require.NoError(t, err)
			require.NotNil(t, stored.OrgBranchNote)
			assert.Equal(t, note, *stored.OrgBranchNote)

			data, err = branchFlow.DeleteBranch(ctx, &dto.DeleteBranchRequest{OrgBranchID: branch.OrgBranchID}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeSoftDeleted, data.Changes.Status)

			_, err = branchFlow.GetBranch(ctx, branch.OrgBranchID)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))

			// deleting the already-inactive row still succeeds
			data, err = branchFlow.DeleteBranch(ctx, &dto.DeleteBranchRequest{OrgBranchID: branch.OrgBranchID}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeSoftDeleted, data.Changes.Status)
		})

		t.Run("DeleteUnknownIsNotFound", func(t *testing.T) {
			_, err := branchFlow.DeleteBranch(ctx, &dto.DeleteBranchRequest{OrgBranchID: 999999}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestFilterOptionsFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		filterFlow := NewFilterOptionsFlow(
			repository.NewOrganizationRepository(testDB.DB),
			repository.NewBranchRepository(testDB.DB),
			repository.NewUserRepository(testDB.DB),
			repository.NewOrganizationTypeRepository(testDB.DB),
			repository.NewIndustryTypeRepository(testDB.DB),
		)

		lookups, err := fixtures.SeedLookups()
		require.NoError(t, err)

		org, err := fixtures.CreateTestOrganization(lookups)
		require.NoError(t, err)
		_, err = fixtures.CreateTestBranch(org.OrgID, true)
		require.NoError(t, err)
		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		ctx := testingutil.CreateTestContext()

		t.Run("OrganizationOptions", func(t *testing.T) {
			data, err := filterFlow.OrganizationFilterOptions(ctx)
			require.NoError(t, err)

			assert.Contains(t, data.Filters["organizationName"], org.OrganizationName)
			assert.Contains(t, data.Filters["organizationType"], lookups.OrgType.OrgType)
			assert.Contains(t, data.Filters["industryType"], lookups.Industry.IndustryType)
		})

		t.Run("UserOptions", func(t *testing.T) {
			data, err := filterFlow.UserFilterOptions(ctx)
			require.NoError(t, err)

			assert.Contains(t, data.Filters["email"], user.Email)
			assert.Contains(t, data.Filters["firstName"], user.FirstName)
		})

		t.Run("BranchOptions", func(t *testing.T) {
			data, err := filterFlow.BranchFilterOptions(ctx)
			require.NoError(t, err)

			assert.Contains(t, data.Filters["organizationName"], org.OrganizationName)
			assert.NotEmpty(t, data.Filters["orgBranchName"])
		})

		return nil
	})
	require.NoError(t, err)
}
