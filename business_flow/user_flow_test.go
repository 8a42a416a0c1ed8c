package businessflow

import (
	"testing"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	testingutil "github.com/orgdesk/orgdesk/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		userRepo := repository.NewUserRepository(testDB.DB)
		sessionRepo := repository.NewUserSessionRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		userFlow := NewUserFlow(userRepo, sessionRepo, auditRepo, bcrypt.MinCost, testDB.DB)

		admin, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		ctx := testingutil.CreateTestContext()
		session := &Session{UserID: admin.UserID, Email: admin.Email, Name: admin.FullName()}
		metadata := NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("CreateStoresABcryptHash", func(t *testing.T) {
			data, err := userFlow.CreateUser(ctx, &dto.CreateUserRequest{
				FirstName: "Grace",
				LastName:  "Hopper",
				Email:     "grace.hopper@example.com",
				Password:  "Compilers1952",
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeCreated, data.Changes.Status)

			user, ok := data.Changes.Entity.(*models.User)
			require.True(t, ok)
			assert.NotEqual(t, "Compilers1952", user.UserPassword)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte("Compilers1952")))
			assert.Equal(t, &admin.UserID, user.CreatedBy)
		})

		t.Run("CreateRejectsDuplicateEmails", func(t *testing.T) {
			_, err := userFlow.CreateUser(ctx, &dto.CreateUserRequest{
				FirstName: "Another",
				LastName:  "Grace",
				Email:     "grace.hopper@example.com",
				Password:  "Different999",
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsEmailAlreadyExists(err))
		})

		t.Run("UpdateNeverTouchesThePassword", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			originalHash := user.UserPassword

			newFirst := "Edith"
			data, err := userFlow.UpdateUser(ctx, &dto.UpdateUserRequest{
				UserID:    user.UserID,
				FirstName: &newFirst,
			}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeModified, data.Changes.Status)

			stored, err := userFlow.GetUser(ctx, user.UserID)
			require.NoError(t, err)
			assert.Equal(t, "Edith", stored.FirstName)
			assert.Equal(t, originalHash, stored.UserPassword)
		})

		t.Run("UpdateRejectsATakenEmail", func(t *testing.T) {
			first, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			second, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = userFlow.UpdateUser(ctx, &dto.UpdateUserRequest{
				UserID: second.UserID,
				Email:  &first.Email,
			}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsEmailAlreadyExists(err))
		})

		t.Run("DeleteDestroysLiveSessions", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			liveSession, err := fixtures.CreateTestSession(user)
			require.NoError(t, err)

			data, err := userFlow.DeleteUser(ctx, &dto.DeleteUserRequest{UserID: user.UserID}, session, metadata)
			require.NoError(t, err)
			require.NotNil(t, data.Changes.Affected)
			assert.Equal(t, int64(1), *data.Changes.Affected)

			_, err = userFlow.GetUser(ctx, user.UserID)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))

			stored, err := sessionRepo.BySessionToken(ctx, liveSession.SessionToken)
			require.NoError(t, err)
			assert.Nil(t, stored)
		})

		t.Run("DeleteIsIdempotent", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = userFlow.DeleteUser(ctx, &dto.DeleteUserRequest{UserID: user.UserID}, session, metadata)
			require.NoError(t, err)

			// deleting the already-inactive row still succeeds
			data, err := userFlow.DeleteUser(ctx, &dto.DeleteUserRequest{UserID: user.UserID}, session, metadata)
			require.NoError(t, err)
			assert.Equal(t, dto.ChangeModified, data.Changes.Status)
		})

		t.Run("DeleteUnknownIsNotFound", func(t *testing.T) {
			_, err := userFlow.DeleteUser(ctx, &dto.DeleteUserRequest{UserID: 999999}, session, metadata)
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})

		t.Run("BulkDeleteCountsDistinctLiveRows", func(t *testing.T) {
			first, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			second, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			data, err := userFlow.BulkDeleteUsers(ctx, &dto.BulkDeleteRequest{
				IDs: []uint{first.UserID, second.UserID, first.UserID, 999999},
			}, session, metadata)
			require.NoError(t, err)
			require.NotNil(t, data.Changes.Affected)
			assert.Equal(t, int64(2), *data.Changes.Affected)
		})

		return nil
	})
	require.NoError(t, err)
}
