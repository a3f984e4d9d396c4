package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseware-labs/account-service/internal/domain/entity"
	"github.com/courseware-labs/account-service/pkg/mailer"
)

func seedUser(repo *fakeRepo) *entity.User {
	u := &entity.User{
		ID:        "u1",
		Email:     "ann@x.com",
		Username:  "ann@x.com",
		FirstName: "Ann",
		LastName:  "Lee",
	}
	repo.add(u)
	return u
}

func TestReadProfileNotFound(t *testing.T) {
	svc := NewProfileService(newFakeRepo(), nil, nil, nil)

	_, err := svc.ReadProfile(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestReadProfileFlattensMissingAddress(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	svc := NewProfileService(repo, nil, nil, nil)

	view, err := svc.ReadProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", view.Basic.FirstName)
	assert.Equal(t, "ann@x.com", view.Basic.Email)
	assert.Equal(t, AddressInfo{}, view.Address)
}

func TestUpdateBasicInfoSyncsLoginName(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	svc := NewProfileService(repo, nil, nil, nil)
	ctx := context.Background()

	res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Anna",
		LastName:  "Lee",
		Email:     "anna@y.com",
		Phone:     "+4670000000",
		Bio:       "hello",
	})
	require.True(t, res.OK())

	view, err := svc.ReadProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", view.Basic.FirstName)
	assert.Equal(t, "anna@y.com", view.Basic.Email)
	assert.Equal(t, "+4670000000", view.Basic.Phone)
	assert.Equal(t, "hello", view.Basic.Bio)
	assert.Equal(t, "anna@y.com", repo.users["u1"].Username)
}

func TestUpdateBasicInfoValidationLeavesProfileUnchanged(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	svc := NewProfileService(repo, nil, nil, nil)
	ctx := context.Background()

	before, err := svc.ReadProfile(ctx, "u1")
	require.NoError(t, err)

	for name, in := range map[string]BasicInfoInput{
		"empty first name": {FirstName: "", LastName: "Lee", Email: "ann@x.com"},
		"empty last name":  {FirstName: "Ann", LastName: "", Email: "ann@x.com"},
		"bad email":        {FirstName: "Ann", LastName: "Lee", Email: "not-an-email"},
	} {
		res := svc.UpdateBasicInfo(ctx, "u1", in)
		assert.Equal(t, OutcomeValidationFailed, res.Outcome, name)
		assert.NotEmpty(t, res.Fields, name)
	}

	after, err := svc.ReadProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Zero(t, repo.saves)
}

func TestUpdateBasicInfoRejectsMalformedPhone(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	svc := NewProfileService(repo, nil, nil, nil)
	ctx := context.Background()

	for _, phone := range []string{"not-a-phone", "070-123 45 67", "+0123456"} {
		res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
			FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: phone,
		})
		assert.Equal(t, OutcomeValidationFailed, res.Outcome, phone)
		require.NotEmpty(t, res.Fields, phone)
		assert.Equal(t, "phone", res.Fields[0].Field, phone)
	}
	assert.Zero(t, repo.saves)

	// Empty phone stays optional.
	res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "",
	})
	assert.True(t, res.OK())
}

func TestUpdateBasicInfoPersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	repo.saveErr = errStoreDown
	svc := NewProfileService(repo, nil, nil, nil)
	ctx := context.Background()

	res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Anna", LastName: "Lee", Email: "anna@y.com",
	})
	assert.Equal(t, OutcomePersistenceFailed, res.Outcome)

	view, err := svc.ReadProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", view.Basic.Email)
}

func TestUpdateBasicInfoUnknownCaller(t *testing.T) {
	svc := NewProfileService(newFakeRepo(), nil, nil, nil)

	res := svc.UpdateBasicInfo(context.Background(), "ghost", BasicInfoInput{
		FirstName: "A", LastName: "B", Email: "a@b.com",
	})
	assert.Equal(t, OutcomeNotFound, res.Outcome)
}

func TestUpdateBasicInfoPublishesNoticeOnEmailChange(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	pub := &fakePublisher{}
	svc := NewProfileService(repo, nil, nil, pub)
	ctx := context.Background()

	res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Ann", LastName: "Lee", Email: "new@x.com",
	})
	require.True(t, res.OK())
	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.NotificationJob)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", job.To)
	assert.Equal(t, "new@x.com", job.NewEmail)
	assert.Equal(t, mailer.KindEmailChanged, job.Kind)

	// Same email again: no second notice.
	res = svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Ann", LastName: "Lee", Email: "new@x.com",
	})
	require.True(t, res.OK())
	assert.Len(t, pub.jobs, 1)
}

func TestUpdateAddressCreatesThenMutatesSameRow(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	svc := NewProfileService(repo, nil, nil, nil)
	ctx := context.Background()

	res := svc.UpdateAddress(ctx, "u1", AddressInput{
		Line1: "Main Street 1", PostalCode: "12345", City: "Gothenburg",
	})
	require.True(t, res.OK())

	stored := repo.users["u1"].Address
	require.NotNil(t, stored)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "Main Street 1", stored.Line1)

	res = svc.UpdateAddress(ctx, "u1", AddressInput{
		Line1: "Side Street 2", Line2: "Apt 3", PostalCode: "54321", City: "Stockholm",
	})
	require.True(t, res.OK())

	stored = repo.users["u1"].Address
	require.NotNil(t, stored)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "Side Street 2", stored.Line1)
	assert.Equal(t, "Apt 3", stored.Line2)
	assert.Equal(t, "54321", stored.PostalCode)
	assert.Equal(t, "Stockholm", stored.City)
}

func TestUpdateAddressValidationCreatesNothing(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	svc := NewProfileService(repo, nil, nil, nil)

	res := svc.UpdateAddress(context.Background(), "u1", AddressInput{
		Line1: "", PostalCode: "123", City: "X",
	})
	assert.Equal(t, OutcomeValidationFailed, res.Outcome)
	assert.Nil(t, repo.users["u1"].Address)
	assert.Zero(t, repo.saves)
}

func TestUpdateAddressPersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	repo.saveErr = errStoreDown
	svc := NewProfileService(repo, nil, nil, nil)

	res := svc.UpdateAddress(context.Background(), "u1", AddressInput{
		Line1: "Main Street 1", PostalCode: "12345", City: "Gothenburg",
	})
	assert.Equal(t, OutcomePersistenceFailed, res.Outcome)
	assert.Nil(t, repo.users["u1"].Address)
}

func TestDecideUpsert(t *testing.T) {
	u := &entity.User{ID: "u1"}
	assert.Equal(t, upsertCreate, decideUpsert(u))
	u.Address = &entity.Address{UserID: "u1"}
	assert.Equal(t, upsertUpdate, decideUpsert(u))
}

func sessionTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRefreshSessionMirrorsFieldsAndKeepsTTL(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	mr, rdb := sessionTestClient(t)
	svc := NewProfileService(repo, rdb, nil, nil)
	ctx := context.Background()

	key := sessionKey("u1")
	require.NoError(t, rdb.HSet(ctx, key, map[string]any{
		"user_id": "u1", "email": "ann@x.com", "sid": "s1",
	}).Err())
	require.NoError(t, rdb.Expire(ctx, key, time.Hour).Err())

	res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Anna", LastName: "Lee", Email: "anna@y.com",
	})
	require.True(t, res.OK())

	assert.Equal(t, "anna@y.com", mr.HGet(key, "email"))
	assert.Equal(t, "s1", mr.HGet(key, "sid"))
	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRefreshSessionDoesNotResurrectExpiredSession(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo)
	mr, rdb := sessionTestClient(t)
	svc := NewProfileService(repo, rdb, nil, nil)
	ctx := context.Background()

	// No session in Redis: the update must still succeed without leaving a
	// TTL-less session hash behind.
	res := svc.UpdateBasicInfo(ctx, "u1", BasicInfoInput{
		FirstName: "Anna", LastName: "Lee", Email: "anna@y.com",
	})
	require.True(t, res.OK())
	assert.False(t, mr.Exists(sessionKey("u1")))
}
