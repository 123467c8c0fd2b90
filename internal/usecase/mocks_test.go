package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type mockSessionRepo struct {
	mock.Mock
}

func newMockSessionRepo(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockSessionRepo {
	repo := &mockSessionRepo{}
	repo.Test(t)

	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := that.Called(ctx, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := that.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

// Update returns the session configured on the mock after running mutate on
// it, the way the Redis repository applies it to the stored copy.
func (that *mockSessionRepo) Update(ctx context.Context, id string, mutate func(session *entity.Session) error) (*entity.Session, error) {
	args := that.Called(ctx, id)

	session, _ := args.Get(0).(*entity.Session)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	if err := mutate(session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
