package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fedblog/blog-server/internal/mocks"
	"github.com/fedblog/blog-server/internal/model"
	"github.com/fedblog/blog-server/internal/testutil"
)

func TestComment_Create_Success(t *testing.T) {
	author := model.User{ID: uuid.New()}
	postID := uuid.New()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}
	userStore := &mocks.UserStore{}

	userStore.On("GetByID", mock.Anything, author.ID).Return(author, nil)
	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{ID: postID}, nil)
	commentStore.On("Save", mock.Anything, mock.MatchedBy(func(c model.Comment) bool {
		return c.ID != uuid.Nil && c.AuthorID == author.ID && c.PostID == postID && !c.CommentedAt.IsZero()
	})).Return(model.Comment{ID: uuid.New(), AuthorID: author.ID, PostID: postID, Content: "nice"}, nil)

	s := NewComment(commentStore, postStore, userStore, passthroughSanitizer{}, testutil.MakeNoopLogger())

	saved, err := s.Create(context.Background(), model.Comment{Content: "nice"}, author, postID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, saved.AuthorID)
	commentStore.AssertExpectations(t)
}

func TestComment_Create_BlankContent(t *testing.T) {
	commentStore := &mocks.CommentStore{}
	s := NewComment(commentStore, &mocks.PostStore{}, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	_, err := s.Create(context.Background(), model.Comment{Content: " "}, model.User{ID: uuid.New()}, uuid.New())
	assertAPIErrorCode(t, err, model.CodeInvalidArgument)
	commentStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestComment_Create_AuthorMissing(t *testing.T) {
	author := model.User{ID: uuid.New()}
	userStore := &mocks.UserStore{}
	userStore.On("GetByID", mock.Anything, author.ID).Return(model.User{}, model.ErrNotFound)

	s := NewComment(&mocks.CommentStore{}, &mocks.PostStore{}, userStore, passthroughSanitizer{}, testutil.MakeNoopLogger())

	_, err := s.Create(context.Background(), model.Comment{Content: "nice"}, author, uuid.New())
	assertAPIErrorCode(t, err, model.CodeUserNotFound)
}

func TestComment_Create_PostMissing(t *testing.T) {
	author := model.User{ID: uuid.New()}
	postID := uuid.New()
	postStore := &mocks.PostStore{}
	userStore := &mocks.UserStore{}

	userStore.On("GetByID", mock.Anything, author.ID).Return(author, nil)
	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{}, model.ErrNotFound)

	s := NewComment(&mocks.CommentStore{}, postStore, userStore, passthroughSanitizer{}, testutil.MakeNoopLogger())

	_, err := s.Create(context.Background(), model.Comment{Content: "nice"}, author, postID)
	assertAPIErrorCode(t, err, model.CodePostNotFound)
}

func TestComment_ListByPost_PostMissing(t *testing.T) {
	postID := uuid.New()
	postStore := &mocks.PostStore{}
	postStore.On("ExistsByID", mock.Anything, postID).Return(false, nil)

	s := NewComment(&mocks.CommentStore{}, postStore, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	_, err := s.ListByPost(context.Background(), postID)
	assertAPIErrorCode(t, err, model.CodePostNotFound)
}

func TestComment_ListByPost_EmptyIsValid(t *testing.T) {
	postID := uuid.New()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}

	postStore.On("ExistsByID", mock.Anything, postID).Return(true, nil)
	commentStore.On("ListByPost", mock.Anything, postID).Return([]model.Comment{}, nil)

	s := NewComment(commentStore, postStore, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	comments, err := s.ListByPost(context.Background(), postID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestComment_Delete_ByAuthor(t *testing.T) {
	author := model.User{ID: uuid.New()}
	postID := uuid.New()
	commentID := uuid.New()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}

	commentStore.On("GetByIDAndPostID", mock.Anything, commentID, postID).
		Return(model.Comment{ID: commentID, PostID: postID, AuthorID: author.ID}, nil)
	postStore.On("GetByID", mock.Anything, postID).
		Return(model.Post{ID: postID, OwnerID: uuid.New()}, nil)
	commentStore.On("DeleteByID", mock.Anything, commentID).Return(nil)

	s := NewComment(commentStore, postStore, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	require.NoError(t, s.Delete(context.Background(), commentID, postID, author))
	commentStore.AssertExpectations(t)
}

func TestComment_Delete_ByPostOwner(t *testing.T) {
	owner := model.User{ID: uuid.New()}
	postID := uuid.New()
	commentID := uuid.New()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}

	commentStore.On("GetByIDAndPostID", mock.Anything, commentID, postID).
		Return(model.Comment{ID: commentID, PostID: postID, AuthorID: uuid.New()}, nil)
	postStore.On("GetByID", mock.Anything, postID).
		Return(model.Post{ID: postID, OwnerID: owner.ID}, nil)
	commentStore.On("DeleteByID", mock.Anything, commentID).Return(nil)

	s := NewComment(commentStore, postStore, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	require.NoError(t, s.Delete(context.Background(), commentID, postID, owner))
	commentStore.AssertExpectations(t)
}

func TestComment_Delete_ThirdPartyDenied(t *testing.T) {
	stranger := model.User{ID: uuid.New()}
	postID := uuid.New()
	commentID := uuid.New()
	commentStore := &mocks.CommentStore{}
	postStore := &mocks.PostStore{}

	commentStore.On("GetByIDAndPostID", mock.Anything, commentID, postID).
		Return(model.Comment{ID: commentID, PostID: postID, AuthorID: uuid.New()}, nil)
	postStore.On("GetByID", mock.Anything, postID).
		Return(model.Post{ID: postID, OwnerID: uuid.New()}, nil)

	s := NewComment(commentStore, postStore, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	err := s.Delete(context.Background(), commentID, postID, stranger)
	assertAPIErrorCode(t, err, model.CodeAccessDenied)
	commentStore.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestComment_Delete_CommentMissing(t *testing.T) {
	postID := uuid.New()
	commentID := uuid.New()
	commentStore := &mocks.CommentStore{}

	commentStore.On("GetByIDAndPostID", mock.Anything, commentID, postID).
		Return(model.Comment{}, model.ErrNotFound)

	s := NewComment(commentStore, &mocks.PostStore{}, &mocks.UserStore{}, passthroughSanitizer{}, testutil.MakeNoopLogger())

	err := s.Delete(context.Background(), commentID, postID, model.User{ID: uuid.New()})
	assertAPIErrorCode(t, err, model.CodeCommentNotFound)
}
