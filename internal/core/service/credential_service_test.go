package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventflow/identity-service/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func TestCredentialService_CreateUser_Success(t *testing.T) {
	svc := NewCredentialService(newStubUserRepo(), zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), "alice@example.com", "pw1", "client")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1, got %d", user.ID)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestCredentialService_CreateUser_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	if _, err := svc.CreateUser(context.Background(), "bob@example.com", "pw", "superadmin"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no record should be created for an invalid role")
	}
}

func TestCredentialService_CreateUser_DuplicateEmail(t *testing.T) {
	svc := NewCredentialService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.CreateUser(context.Background(), "bob@example.com", "pw", "admin"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), "bob@example.com", "pw2", "client"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// lockedUserRepo wraps the stub with a mutex the way a real storage backend
// serializes its unique-constraint check.
type lockedUserRepo struct {
	mu sync.Mutex
	stubUserRepo
}

func (r *lockedUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stubUserRepo.Create(ctx, user)
}

func TestCredentialService_CreateUser_ConcurrentSameEmail(t *testing.T) {
	repo := &lockedUserRepo{stubUserRepo: stubUserRepo{users: make(map[string]*domain.User)}}
	svc := NewCredentialService(repo, zerolog.Nop())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateUser(context.Background(), "race@example.com", "pw", "client")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, duplicates := 0, 0
	for err := range errs {
		switch err {
		case nil:
			succeeded++
		case domain.ErrEmailTaken:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || duplicates != attempts-1 {
		t.Fatalf("expected exactly one success, got %d successes and %d duplicates", succeeded, duplicates)
	}
}

func TestCredentialService_VerifyCredentials_Success(t *testing.T) {
	svc := NewCredentialService(newStubUserRepo(), zerolog.Nop())

	created, err := svc.CreateUser(context.Background(), "carol@example.com", "s3cret", "event-owner")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	user, err := svc.VerifyCredentials(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.ID != created.ID || user.Role != domain.RoleEventOwner {
		t.Fatalf("unexpected user: %+v", user)
	}
}

// Wrong password and unknown email must be indistinguishable so responses
// cannot be used to enumerate registered emails.
func TestCredentialService_VerifyCredentials_NonEnumerating(t *testing.T) {
	svc := NewCredentialService(newStubUserRepo(), zerolog.Nop())
	_, _ = svc.CreateUser(context.Background(), "dave@example.com", "goodpass", "client")

	_, errWrongPass := svc.VerifyCredentials(context.Background(), "dave@example.com", "badpass")
	_, errNoUser := svc.VerifyCredentials(context.Background(), "ghost@example.com", "whatever")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPass)
	}
	if errNoUser != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", errNoUser)
	}
}
