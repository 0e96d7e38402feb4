package service

import (
	"context"
	"testing"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentFixture() (*MockCommentRepository, *MockReviewRepository, CommentService) {
	comments := new(MockCommentRepository)
	reviews := new(MockReviewRepository)
	perms := roleAuthorizer{validators.RoleModerator: true, validators.RoleAdmin: true}
	reviews.On("GetByID", mock.Anything, int64(1), int64(5)).Return(&models.Review{ID: 5, TitleID: 1}, nil).Maybe()
	return comments, reviews, NewCommentService(comments, reviews, perms)
}

func TestCommentCreate(t *testing.T) {
	comments, _, svc := newCommentFixture()
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	resp, err := svc.Create(context.Background(), bob, 1, 5, dto.CreateCommentDTO{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Author)
	assert.Equal(t, "agreed", resp.Text)
}

func TestCommentCreate_BlankText(t *testing.T) {
	comments, _, svc := newCommentFixture()

	_, err := svc.Create(context.Background(), bob, 1, 5, dto.CreateCommentDTO{Text: " \n"})
	assert.ErrorIs(t, err, ErrBlankText)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentCreate_ReviewOfOtherTitle(t *testing.T) {
	_, reviews, svc := newCommentFixture()
	reviews.On("GetByID", mock.Anything, int64(2), int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), bob, 2, 5, dto.CreateCommentDTO{Text: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentUpdate_Permissions(t *testing.T) {
	comments, _, svc := newCommentFixture()
	comment := &models.Comment{ID: 7, ReviewID: 5, AuthorID: bob.ID, Text: "old", Author: bob}
	comments.On("GetByID", mock.Anything, int64(5), int64(7)).Return(comment, nil)
	comments.On("Update", mock.Anything, comment).Return(nil)

	_, err := svc.Update(context.Background(), alice, 1, 5, 7, dto.UpdateCommentDTO{Text: "hijack"})
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := svc.Update(context.Background(), mod, 1, 5, 7, dto.UpdateCommentDTO{Text: "moderated"})
	require.NoError(t, err)
	assert.Equal(t, "moderated", resp.Text)
	assert.Equal(t, "bob", resp.Author)
}

func TestCommentDelete_Author(t *testing.T) {
	comments, _, svc := newCommentFixture()
	comments.On("GetByID", mock.Anything, int64(5), int64(7)).Return(&models.Comment{ID: 7, AuthorID: bob.ID}, nil)
	comments.On("Delete", mock.Anything, int64(7)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), bob, 1, 5, 7))
	comments.AssertExpectations(t)
}
