package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crateloop/steamshelf/internal/boot"
	"github.com/crateloop/steamshelf/internal/model"
)

type fakeDatabase struct {
	users map[model.UserID]*model.User
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{users: map[model.UserID]*model.User{}}
}

func (f *fakeDatabase) CreateUser(user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeDatabase) UserByID(id model.UserID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, model.ErrorUserNotFound
	}
	return user, nil
}

func (f *fakeDatabase) UserByHandle(handle string) (*model.User, error) {
	for _, user := range f.users {
		if user.Handle == handle {
			return user, nil
		}
	}
	return nil, model.ErrorUserNotFound
}

func (f *fakeDatabase) TouchUserLogin(user *model.User) error {
	return nil
}

func testConfig() *boot.Config {
	config := &boot.Config{}
	config.Auth.TokenSecret = "test-secret"
	config.Auth.TokenTTL = time.Hour
	return config
}

func TestRegisterLoginVerify(t *testing.T) {
	assert := assert.New(t)

	db := newFakeDatabase()
	service := New(testConfig(), db)

	user, err := service.Register(&model.CreateUserParams{
		Handle:   "collector",
		Email:    "collector@example.com",
		Password: "hunter2hunter2",
	})
	assert.Nil(err)
	assert.NotEmpty(user.ID)
	assert.NotEqual("hunter2hunter2", user.Password)

	token, loggedIn, err := service.Login(&model.LoginParams{Handle: "collector", Password: "hunter2hunter2"})
	assert.Nil(err)
	assert.NotEmpty(token)
	assert.Equal(user.ID, loggedIn.ID)

	actor, err := service.Verify(token)
	assert.Nil(err)
	assert.Equal(user.ID, actor)
}

func TestLoginWrongPassword(t *testing.T) {
	assert := assert.New(t)

	service := New(testConfig(), newFakeDatabase())
	_, err := service.Register(&model.CreateUserParams{Handle: "collector", Password: "correct horse"})
	assert.Nil(err)

	_, _, err = service.Login(&model.LoginParams{Handle: "collector", Password: "wrong horse"})
	assert.ErrorIs(err, model.ErrorInvalidUsernameOrPassword)

	_, _, err = service.Login(&model.LoginParams{Handle: "nobody", Password: "whatever"})
	assert.ErrorIs(err, model.ErrorInvalidUsernameOrPassword)
}

func TestVerifyGarbageToken(t *testing.T) {
	assert := assert.New(t)

	service := New(testConfig(), newFakeDatabase())
	_, err := service.Verify("not.a.token")
	assert.NotNil(err)
}

func TestVerifyForeignSecret(t *testing.T) {
	assert := assert.New(t)

	db := newFakeDatabase()
	service := New(testConfig(), db)
	_, err := service.Register(&model.CreateUserParams{Handle: "collector", Password: "correct horse"})
	assert.Nil(err)
	token, _, err := service.Login(&model.LoginParams{Handle: "collector", Password: "correct horse"})
	assert.Nil(err)

	other := &boot.Config{}
	other.Auth.TokenSecret = "different-secret"
	other.Auth.TokenTTL = time.Hour

	_, err = New(other, db).Verify(token)
	assert.NotNil(err)
}
