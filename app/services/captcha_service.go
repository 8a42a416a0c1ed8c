package services

import (
	"context"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wenlng/go-captcha/v2/rotate"
	xdraw "golang.org/x/image/draw"
)

// CaptchaService generates and verifies rotate captcha challenges for the
// sign-in form. Challenges are stored in-memory with a TTL and consumed on
// the first verification attempt, whether it succeeds or not.
type CaptchaService interface {
	// GenerateRotate creates a rotate captcha challenge and returns the assets and challenge ID
	GenerateRotate(ctx context.Context) (*RotateChallenge, error)
	// VerifyRotate verifies the provided user angle for a given challenge ID
	VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool
}

type RotateChallenge struct {
	ID                string
	MasterImageBase64 string
	ThumbImageBase64  string
	ThumbSizePx       int
}

type captchaServiceImpl struct {
	rotator   rotate.Captcha
	store     *challengeStore
	padding   int // tolerance for angle validation, in degrees
	imgSizePx int // square size for rotate captcha images
}

// NewCaptchaServiceRotate constructs a CaptchaService using rotate mode.
// ttl is the window during which a challenge remains valid, padding the
// acceptable angle difference in degrees, imgSizePx the square image size.
func NewCaptchaServiceRotate(ttl time.Duration, padding int, imgSizePx int) (CaptchaService, error) {
	if imgSizePx <= 0 {
		imgSizePx = 220
	}

	builder := rotate.NewBuilder(
		rotate.WithImageSquareSize(imgSizePx),
	)
	builder.SetResources(
		rotate.WithImages(generateBackgrounds(3, imgSizePx)),
	)
	rotator := builder.Make()

	return &captchaServiceImpl{
		rotator:   rotator,
		store:     newChallengeStore(ttl),
		padding:   padding,
		imgSizePx: imgSizePx,
	}, nil
}

func (s *captchaServiceImpl) GenerateRotate(ctx context.Context) (*RotateChallenge, error) {
	captData, err := s.rotator.Generate()
	if err != nil {
		return nil, err
	}

	block := captData.GetData()
	if block == nil {
		return nil, err
	}

	masterB64, err := captData.GetMasterImage().ToBase64()
	if err != nil {
		return nil, err
	}
	thumbB64, err := captData.GetThumbImage().ToBase64()
	if err != nil {
		return nil, err
	}

	challengeID := uuid.New().String()
	s.store.Set(challengeID, challengeEntry{
		targetAngle: block.Angle,
		expiresAt:   time.Now().Add(s.store.ttl),
	})

	return &RotateChallenge{
		ID:                challengeID,
		MasterImageBase64: masterB64,
		ThumbImageBase64:  thumbB64,
		ThumbSizePx:       block.Width,
	}, nil
}

func (s *captchaServiceImpl) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	entry, ok := s.store.Get(challengeID)
	if !ok {
		return false
	}

	ua := int(math.Round(userAngle))
	ok = rotate.Validate(ua, entry.targetAngle, s.padding)
	// consume on success or failure
	s.store.Delete(challengeID)

	return ok
}

// --- In-memory challenge store with TTL ---

type challengeEntry struct {
	targetAngle int
	expiresAt   time.Time
}

type challengeStore struct {
	mu  sync.RWMutex
	m   map[string]challengeEntry
	ttl time.Duration
}

func newChallengeStore(ttl time.Duration) *challengeStore {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	cs := &challengeStore{
		m:   make(map[string]challengeEntry),
		ttl: ttl,
	}
	go cs.cleanupLoop()
	return cs
}

func (s *challengeStore) Set(id string, e challengeEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = e
}

func (s *challengeStore) Get(id string) (challengeEntry, bool) {
	s.mu.RLock()
	e, ok := s.m[id]
	s.mu.RUnlock()
	if !ok {
		return challengeEntry{}, false
	}
	if time.Now().After(e.expiresAt) {
		s.Delete(id)
		return challengeEntry{}, false
	}
	return e, true
}

func (s *challengeStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

func (s *challengeStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for k, v := range s.m {
			if now.After(v.expiresAt) {
				delete(s.m, k)
			}
		}
		s.mu.Unlock()
	}
}

// --- Background image generation ---

// generateBackgrounds produces n procedurally generated square backgrounds.
// Each starts as a small random color field upscaled with Catmull-Rom
// interpolation, which yields smooth organic blobs that give the rotated
// crop enough visual detail to orient against.
func generateBackgrounds(n int, size int) []image.Image {
	if n <= 0 {
		n = 1
	}
	imgs := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		imgs = append(imgs, newBlobImage(size))
	}
	return imgs
}

func newBlobImage(size int) image.Image {
	const seedSize = 16

	seed := image.NewRGBA(image.Rect(0, 0, seedSize, seedSize))
	for y := 0; y < seedSize; y++ {
		for x := 0; x < seedSize; x++ {
			seed.Set(x, y, color.RGBA{
				R: uint8(80 + rand.Intn(160)),
				G: uint8(80 + rand.Intn(160)),
				B: uint8(120 + rand.Intn(120)),
				A: 255,
			})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), seed, seed.Bounds(), xdraw.Over, nil)
	return dst
}
