package progress

import (
	"context"
	"sync"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

var _ albumRepo = &albumRepoMock{}

type albumRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id int64) (*domain.Album, error)
	ListRecentFunc  func(ctx context.Context) ([]*domain.Album, error)
	GetImageFunc    func(ctx context.Context, id int64) (*domain.AlbumImage, error)
	ListImagesFunc  func(ctx context.Context, albumID int64) ([]*domain.AlbumImage, error)
	CountImagesFunc func(ctx context.Context, albumID int64) (int, error)

	calls struct {
		GetByID     []struct{ ID int64 }
		ListRecent  []struct{}
		GetImage    []struct{ ID int64 }
		ListImages  []struct{ AlbumID int64 }
		CountImages []struct{ AlbumID int64 }
	}
	mu sync.RWMutex
}

func (mock *albumRepoMock) GetByID(ctx context.Context, id int64) (*domain.Album, error) {
	if mock.GetByIDFunc == nil {
		panic("albumRepoMock.GetByIDFunc: method is nil but albumRepo.GetByID was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID int64 }{id})
	mock.mu.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *albumRepoMock) GetByIDCalls() []struct{ ID int64 } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByID
}

func (mock *albumRepoMock) ListRecent(ctx context.Context) ([]*domain.Album, error) {
	if mock.ListRecentFunc == nil {
		panic("albumRepoMock.ListRecentFunc: method is nil but albumRepo.ListRecent was just called")
	}
	mock.mu.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, struct{}{})
	mock.mu.Unlock()
	return mock.ListRecentFunc(ctx)
}

func (mock *albumRepoMock) ListRecentCalls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.ListRecent
}

func (mock *albumRepoMock) GetImage(ctx context.Context, id int64) (*domain.AlbumImage, error) {
	if mock.GetImageFunc == nil {
		panic("albumRepoMock.GetImageFunc: method is nil but albumRepo.GetImage was just called")
	}
	mock.mu.Lock()
	mock.calls.GetImage = append(mock.calls.GetImage, struct{ ID int64 }{id})
	mock.mu.Unlock()
	return mock.GetImageFunc(ctx, id)
}

func (mock *albumRepoMock) GetImageCalls() []struct{ ID int64 } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetImage
}

func (mock *albumRepoMock) ListImages(ctx context.Context, albumID int64) ([]*domain.AlbumImage, error) {
	if mock.ListImagesFunc == nil {
		panic("albumRepoMock.ListImagesFunc: method is nil but albumRepo.ListImages was just called")
	}
	mock.mu.Lock()
	mock.calls.ListImages = append(mock.calls.ListImages, struct{ AlbumID int64 }{albumID})
	mock.mu.Unlock()
	return mock.ListImagesFunc(ctx, albumID)
}

func (mock *albumRepoMock) ListImagesCalls() []struct{ AlbumID int64 } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.ListImages
}

func (mock *albumRepoMock) CountImages(ctx context.Context, albumID int64) (int, error) {
	if mock.CountImagesFunc == nil {
		panic("albumRepoMock.CountImagesFunc: method is nil but albumRepo.CountImages was just called")
	}
	mock.mu.Lock()
	mock.calls.CountImages = append(mock.calls.CountImages, struct{ AlbumID int64 }{albumID})
	mock.mu.Unlock()
	return mock.CountImagesFunc(ctx, albumID)
}

func (mock *albumRepoMock) CountImagesCalls() []struct{ AlbumID int64 } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.CountImages
}

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	GetCompletionFunc        func(ctx context.Context, openID string, imageID int64) (*domain.UserAlbumImage, error)
	MostRecentCompletionFunc func(ctx context.Context, openID string) (*domain.UserAlbumImage, error)
	MarkCompletedFunc        func(ctx context.Context, openID string, imageID int64) (bool, error)
	CompletedImageIDsFunc    func(ctx context.Context, openID string, albumID int64) (map[int64]bool, error)
	CountCompletedFunc       func(ctx context.Context, openID string, albumID int64) (int, error)
	GetUserAlbumFunc         func(ctx context.Context, openID string, albumID int64) (*domain.UserAlbum, error)
	SetAlbumCompletedFunc    func(ctx context.Context, openID string, albumID int64) error

	calls struct {
		GetCompletion []struct {
			OpenID  string
			ImageID int64
		}
		MostRecentCompletion []struct{ OpenID string }
		MarkCompleted        []struct {
			OpenID  string
			ImageID int64
		}
		CompletedImageIDs []struct {
			OpenID  string
			AlbumID int64
		}
		CountCompleted []struct {
			OpenID  string
			AlbumID int64
		}
		GetUserAlbum []struct {
			OpenID  string
			AlbumID int64
		}
		SetAlbumCompleted []struct {
			OpenID  string
			AlbumID int64
		}
	}
	mu sync.RWMutex
}

func (mock *progressRepoMock) GetCompletion(ctx context.Context, openID string, imageID int64) (*domain.UserAlbumImage, error) {
	if mock.GetCompletionFunc == nil {
		panic("progressRepoMock.GetCompletionFunc: method is nil but progressRepo.GetCompletion was just called")
	}
	mock.mu.Lock()
	mock.calls.GetCompletion = append(mock.calls.GetCompletion, struct {
		OpenID  string
		ImageID int64
	}{openID, imageID})
	mock.mu.Unlock()
	return mock.GetCompletionFunc(ctx, openID, imageID)
}

func (mock *progressRepoMock) GetCompletionCalls() []struct {
	OpenID  string
	ImageID int64
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetCompletion
}

func (mock *progressRepoMock) MostRecentCompletion(ctx context.Context, openID string) (*domain.UserAlbumImage, error) {
	if mock.MostRecentCompletionFunc == nil {
		panic("progressRepoMock.MostRecentCompletionFunc: method is nil but progressRepo.MostRecentCompletion was just called")
	}
	mock.mu.Lock()
	mock.calls.MostRecentCompletion = append(mock.calls.MostRecentCompletion, struct{ OpenID string }{openID})
	mock.mu.Unlock()
	return mock.MostRecentCompletionFunc(ctx, openID)
}

func (mock *progressRepoMock) MostRecentCompletionCalls() []struct{ OpenID string } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.MostRecentCompletion
}

func (mock *progressRepoMock) MarkCompleted(ctx context.Context, openID string, imageID int64) (bool, error) {
	if mock.MarkCompletedFunc == nil {
		panic("progressRepoMock.MarkCompletedFunc: method is nil but progressRepo.MarkCompleted was just called")
	}
	mock.mu.Lock()
	mock.calls.MarkCompleted = append(mock.calls.MarkCompleted, struct {
		OpenID  string
		ImageID int64
	}{openID, imageID})
	mock.mu.Unlock()
	return mock.MarkCompletedFunc(ctx, openID, imageID)
}

func (mock *progressRepoMock) MarkCompletedCalls() []struct {
	OpenID  string
	ImageID int64
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.MarkCompleted
}

func (mock *progressRepoMock) CompletedImageIDs(ctx context.Context, openID string, albumID int64) (map[int64]bool, error) {
	if mock.CompletedImageIDsFunc == nil {
		panic("progressRepoMock.CompletedImageIDsFunc: method is nil but progressRepo.CompletedImageIDs was just called")
	}
	mock.mu.Lock()
	mock.calls.CompletedImageIDs = append(mock.calls.CompletedImageIDs, struct {
		OpenID  string
		AlbumID int64
	}{openID, albumID})
	mock.mu.Unlock()
	return mock.CompletedImageIDsFunc(ctx, openID, albumID)
}

func (mock *progressRepoMock) CompletedImageIDsCalls() []struct {
	OpenID  string
	AlbumID int64
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.CompletedImageIDs
}

func (mock *progressRepoMock) CountCompleted(ctx context.Context, openID string, albumID int64) (int, error) {
	if mock.CountCompletedFunc == nil {
		panic("progressRepoMock.CountCompletedFunc: method is nil but progressRepo.CountCompleted was just called")
	}
	mock.mu.Lock()
	mock.calls.CountCompleted = append(mock.calls.CountCompleted, struct {
		OpenID  string
		AlbumID int64
	}{openID, albumID})
	mock.mu.Unlock()
	return mock.CountCompletedFunc(ctx, openID, albumID)
}

func (mock *progressRepoMock) CountCompletedCalls() []struct {
	OpenID  string
	AlbumID int64
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.CountCompleted
}

func (mock *progressRepoMock) GetUserAlbum(ctx context.Context, openID string, albumID int64) (*domain.UserAlbum, error) {
	if mock.GetUserAlbumFunc == nil {
		panic("progressRepoMock.GetUserAlbumFunc: method is nil but progressRepo.GetUserAlbum was just called")
	}
	mock.mu.Lock()
	mock.calls.GetUserAlbum = append(mock.calls.GetUserAlbum, struct {
		OpenID  string
		AlbumID int64
	}{openID, albumID})
	mock.mu.Unlock()
	return mock.GetUserAlbumFunc(ctx, openID, albumID)
}

func (mock *progressRepoMock) GetUserAlbumCalls() []struct {
	OpenID  string
	AlbumID int64
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetUserAlbum
}

func (mock *progressRepoMock) SetAlbumCompleted(ctx context.Context, openID string, albumID int64) error {
	if mock.SetAlbumCompletedFunc == nil {
		panic("progressRepoMock.SetAlbumCompletedFunc: method is nil but progressRepo.SetAlbumCompleted was just called")
	}
	mock.mu.Lock()
	mock.calls.SetAlbumCompleted = append(mock.calls.SetAlbumCompleted, struct {
		OpenID  string
		AlbumID int64
	}{openID, albumID})
	mock.mu.Unlock()
	return mock.SetAlbumCompletedFunc(ctx, openID, albumID)
}

func (mock *progressRepoMock) SetAlbumCompletedCalls() []struct {
	OpenID  string
	AlbumID int64
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetAlbumCompleted
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByOpenIDFunc   func(ctx context.Context, openID string) (*domain.User, error)
	IncrementRankFunc func(ctx context.Context, openID string, delta int) (int, error)

	calls struct {
		GetByOpenID   []struct{ OpenID string }
		IncrementRank []struct {
			OpenID string
			Delta  int
		}
	}
	mu sync.RWMutex
}

func (mock *userRepoMock) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	if mock.GetByOpenIDFunc == nil {
		panic("userRepoMock.GetByOpenIDFunc: method is nil but userRepo.GetByOpenID was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByOpenID = append(mock.calls.GetByOpenID, struct{ OpenID string }{openID})
	mock.mu.Unlock()
	return mock.GetByOpenIDFunc(ctx, openID)
}

func (mock *userRepoMock) GetByOpenIDCalls() []struct{ OpenID string } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByOpenID
}

func (mock *userRepoMock) IncrementRank(ctx context.Context, openID string, delta int) (int, error) {
	if mock.IncrementRankFunc == nil {
		panic("userRepoMock.IncrementRankFunc: method is nil but userRepo.IncrementRank was just called")
	}
	mock.mu.Lock()
	mock.calls.IncrementRank = append(mock.calls.IncrementRank, struct {
		OpenID string
		Delta  int
	}{openID, delta})
	mock.mu.Unlock()
	return mock.IncrementRankFunc(ctx, openID, delta)
}

func (mock *userRepoMock) IncrementRankCalls() []struct {
	OpenID string
	Delta  int
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.IncrementRank
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback inline, so repo mocks see the same ctx.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	mu sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.mu.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.mu.Unlock()
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.RunInTx
}
