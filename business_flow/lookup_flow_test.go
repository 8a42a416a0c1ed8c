package businessflow

import (
	"testing"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	testingutil "github.com/orgdesk/orgdesk/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLookupFlow(testDB *testingutil.TestDB) LookupFlow {
	return NewLookupFlow(
		repository.NewOrganizationTypeRepository(testDB.DB),
		repository.NewIndustryTypeRepository(testDB.DB),
		repository.NewCountryRepository(testDB.DB),
		repository.NewCountryStateRepository(testDB.DB),
		repository.NewCityRepository(testDB.DB),
		repository.NewPhoneNumberTypeRepository(testDB.DB),
		repository.NewAddressTypeRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		testDB.DB,
	)
}

func TestLookupFlowIndustryTypes(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		lookupFlow := newTestLookupFlow(testDB)

		admin, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		ctx := testingutil.CreateTestContext()
		session := &Session{UserID: admin.UserID, Email: admin.Email, Name: admin.FullName()}
		metadata := NewClientMetadata("127.0.0.1", "test-agent")

		createIndustry := func(name string, parentID *uint) *models.IndustryType {
			data, err := lookupFlow.CreateIndustryType(ctx, &dto.CreateIndustryTypeRequest{
				IndustryType:         name,
				ParentIndustryTypeID: parentID,
			}, session, metadata)
			require.NoError(t, err)
			row, ok := data.Changes.Entity.(*models.IndustryType)
			require.True(t, ok)
			return row
		}

		t.Run("NestingUnderAParent", func(t *testing.T) {
			parent := createIndustry("Manufacturing", nil)
			child := createIndustry("Automotive", &parent.IndustryTypeID)

			stored, err := lookupFlow.GetIndustryType(ctx, child.IndustryTypeID)
			require.NoError(t, err)
			require.NotNil(t, stored.ParentIndustryTypeID)
			assert.Equal(t, parent.IndustryTypeID, *stored.ParentIndustryTypeID)
			assert.True(t, stored.IsSubType())
		})

		t.Run("UnknownParentIsRejected", func(t *testing.T) {
			missing := uint(999999)
			_, err := lookupFlow.CreateIndustryType(ctx, &dto.CreateIndustryTypeRequest{
				IndustryType:         "Orphaned",
				ParentIndustryTypeID: &missing,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsIndustryParentNotFound(err))
		})

		t.Run("SelfParentIsACycle", func(t *testing.T) {
			row := createIndustry("Selfish", nil)

			_, err := lookupFlow.UpdateIndustryType(ctx, &dto.UpdateIndustryTypeRequest{
				IndustryTypeID:       row.IndustryTypeID,
				ParentIndustryTypeID: &row.IndustryTypeID,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsIndustryParentCycle(err))
		})

		t.Run("ReparentingOntoADescendantIsACycle", func(t *testing.T) {
			top := createIndustry("Top", nil)
			mid := createIndustry("Mid", &top.IndustryTypeID)
			leaf := createIndustry("Leaf", &mid.IndustryTypeID)

			_, err := lookupFlow.UpdateIndustryType(ctx, &dto.UpdateIndustryTypeRequest{
				IndustryTypeID:       top.IndustryTypeID,
				ParentIndustryTypeID: &leaf.IndustryTypeID,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsIndustryParentCycle(err))
		})

		t.Run("ValidReparenting", func(t *testing.T) {
			oldParent := createIndustry("Old Parent", nil)
			newParent := createIndustry("New Parent", nil)
			child := createIndustry("Moving Child", &oldParent.IndustryTypeID)

			data, err := lookupFlow.UpdateIndustryType(ctx, &dto.UpdateIndustryTypeRequest{
				IndustryTypeID:       child.IndustryTypeID,
				ParentIndustryTypeID: &newParent.IndustryTypeID,
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangePatched, data.Changes.Status)

			stored, err := lookupFlow.GetIndustryType(ctx, child.IndustryTypeID)
			require.NoError(t, err)
			require.NotNil(t, stored.ParentIndustryTypeID)
			assert.Equal(t, newParent.IndustryTypeID, *stored.ParentIndustryTypeID)
		})

		t.Run("UpdateUnknownIsNotFound", func(t *testing.T) {
			name := "Ghost"
			_, err := lookupFlow.UpdateIndustryType(ctx, &dto.UpdateIndustryTypeRequest{
				IndustryTypeID: 999999,
				IndustryType:   &name,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLookupFlowGeography(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		lookupFlow := newTestLookupFlow(testDB)

		admin, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		ctx := testingutil.CreateTestContext()
		session := &Session{UserID: admin.UserID, Email: admin.Email, Name: admin.FullName()}
		metadata := NewClientMetadata("127.0.0.1", "test-agent")

		countryData, err := lookupFlow.CreateCountry(ctx, &dto.CreateCountryRequest{Country: "Japan"}, session, metadata)
		require.NoError(t, err)
		country := countryData.Changes.Entity.(*models.Country)

		t.Run("StateRequiresAnExistingCountry", func(t *testing.T) {
			_, err := lookupFlow.CreateCountryState(ctx, &dto.CreateCountryStateRequest{
				CountryID:    999999,
				CountryState: "Nowhere",
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsCountryNotFound(err))

			data, err := lookupFlow.CreateCountryState(ctx, &dto.CreateCountryStateRequest{
				CountryID:    country.CountryID,
				CountryState: "Kanagawa",
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeInserted, data.Changes.Status)
		})

		t.Run("CityRequiresAnExistingState", func(t *testing.T) {
			_, err := lookupFlow.CreateCity(ctx, &dto.CreateCityRequest{
				CountryStateID: 999999,
				City:           "Nowhere City",
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsCountryStateNotFound(err))

			stateData, err := lookupFlow.CreateCountryState(ctx, &dto.CreateCountryStateRequest{
				CountryID:    country.CountryID,
				CountryState: "Osaka",
			}, session, metadata)
			require.NoError(t, err)
			state := stateData.Changes.Entity.(*models.CountryState)

			cityData, err := lookupFlow.CreateCity(ctx, &dto.CreateCityRequest{
				CountryStateID: state.CountryStateID,
				City:           "Sakai",
			}, session, metadata)
			require.NoError(t, err)
			city := cityData.Changes.Entity.(*models.City)
			assert.Equal(t, state.CountryStateID, city.CountryStateID)
		})

		t.Run("LookupListsShareTheCountPredicates", func(t *testing.T) {
			_, err := fixtures.SeedLookups()
			require.NoError(t, err)

			data, err := lookupFlow.ListCountries(ctx, &dto.ListParams{Search: "Japan"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), data.Count)
			assert.Len(t, data.Rows.([]*models.Country), 1)
		})

		return nil
	})
	require.NoError(t, err)
}
