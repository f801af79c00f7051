// Package repotest provides in-memory repositories with the same error
// contract as the PostgreSQL implementations.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/repository"
)

// Store backs every fake repository; deleting a user removes its relationships.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]model.User
	gyms     map[uuid.UUID]model.Gym
	members  map[uuid.UUID]model.GymRelationship
	coaching map[uuid.UUID]model.CoachRelationship
	clock    time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]model.User),
		gyms:     make(map[uuid.UUID]model.Gym),
		members:  make(map[uuid.UUID]model.GymRelationship),
		coaching: make(map[uuid.UUID]model.CoachRelationship),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) Users() repository.UserRepository                  { return userRepo{s} }
func (s *Store) Gyms() repository.GymRepository                    { return gymRepo{s} }
func (s *Store) Memberships() repository.GymRelationshipRepository { return memberRepo{s} }
func (s *Store) Coaching() repository.CoachRelationshipRepository  { return coachRepo{s} }

// tick hands out strictly increasing timestamps so list order is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Status == 0 {
		user.Status = model.AccountStatusActive
	}
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r userRepo) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.Status != model.AccountStatusActive {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r userRepo) List(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r userRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if email, ok := fields["email"].(string); ok {
		for otherID, other := range s.users {
			if otherID != id && other.Email == email {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for k, v := range fields {
		if err := applyUserField(&u, k, v); err != nil {
			return err
		}
	}
	u.UpdatedAt = s.tick()
	s.users[id] = u
	return nil
}

func (r userRepo) Delete(_ context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for k, m := range s.members {
		if m.UserID == id {
			delete(s.members, k)
		}
	}
	for k, c := range s.coaching {
		if c.AthleteID == id || c.CoachID == id {
			delete(s.coaching, k)
		}
	}
	delete(s.users, id)
	return nil
}

func applyUserField(u *model.User, key string, v interface{}) error {
	switch key {
	case "email":
		u.Email = v.(string)
	case "first_name":
		u.FirstName = v.(string)
	case "last_name":
		u.LastName = v.(string)
	case "nick_name":
		u.NickName = v.(*string)
	case "profile_image_url":
		u.ProfileImageURL = v.(*string)
	case "date_of_birth":
		u.DateOfBirth = v.(*model.Date)
	case "last_tested":
		u.LastTested = v.(*model.Date)
	case "sex":
		u.Sex = v.(*model.Sex)
	case "height":
		u.Height = v.(*float64)
	case "weight":
		u.Weight = v.(*float64)
	case "status":
		u.Status = v.(model.AccountStatus)
	case "is_athlete":
		u.IsAthlete = v.(bool)
	case "is_coach":
		u.IsCoach = v.(bool)
	case "is_admin":
		u.IsAdmin = v.(bool)
	default:
		return fmt.Errorf("repotest: unknown user column %q", key)
	}
	return nil
}

type gymRepo struct{ s *Store }

func (r gymRepo) Create(_ context.Context, gym *model.Gym) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.gyms {
		if g.Name == gym.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if gym.ID == uuid.Nil {
		gym.ID = uuid.New()
	}
	gym.CreatedAt = s.tick()
	gym.UpdatedAt = gym.CreatedAt
	s.gyms[gym.ID] = *gym
	return nil
}

func (r gymRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Gym, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.gyms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func (r gymRepo) GetByName(_ context.Context, name string) (*model.Gym, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.gyms {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memberRepo struct{ s *Store }

func (r memberRepo) Create(_ context.Context, rel *model.GymRelationship) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.UserID == rel.UserID && m.GymID == rel.GymID && m.Role == rel.Role {
			return gorm.ErrDuplicatedKey
		}
	}
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	rel.CreatedAt = s.tick()
	s.members[rel.ID] = *rel
	return nil
}

func (r memberRepo) GetByID(_ context.Context, id uuid.UUID) (*model.GymRelationship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r memberRepo) Find(_ context.Context, userID, gymID uuid.UUID, role model.GymRole) (*model.GymRelationship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if m.UserID == userID && m.GymID == gymID && m.Role == role {
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memberRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]model.GymRelationship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.GymRelationship{}
	for _, m := range r.s.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memberRepo) Update(_ context.Context, rel *model.GymRelationship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[rel.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.IsActive = rel.IsActive
	m.IsApproved = rel.IsApproved
	r.s.members[rel.ID] = m
	return nil
}

type coachRepo struct{ s *Store }

func (r coachRepo) Create(_ context.Context, rel *model.CoachRelationship) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if rel.AthleteID == rel.CoachID {
		return fmt.Errorf("repotest: check constraint chk_coach_rel_distinct_users violated")
	}
	for _, c := range s.coaching {
		if c.AthleteID == rel.AthleteID && c.CoachID == rel.CoachID && c.GymID == rel.GymID {
			return gorm.ErrDuplicatedKey
		}
	}
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	rel.CreatedAt = s.tick()
	s.coaching[rel.ID] = *rel
	return nil
}

func (r coachRepo) GetByID(_ context.Context, id uuid.UUID) (*model.CoachRelationship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coaching[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r coachRepo) Find(_ context.Context, athleteID, coachID, gymID uuid.UUID) (*model.CoachRelationship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.coaching {
		if c.AthleteID == athleteID && c.CoachID == coachID && c.GymID == gymID {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r coachRepo) ListActiveByAthlete(_ context.Context, athleteID uuid.UUID) ([]model.CoachRelationship, error) {
	return r.listActive(func(c model.CoachRelationship) bool { return c.AthleteID == athleteID }), nil
}

func (r coachRepo) ListActiveByCoach(_ context.Context, coachID uuid.UUID) ([]model.CoachRelationship, error) {
	return r.listActive(func(c model.CoachRelationship) bool { return c.CoachID == coachID }), nil
}

func (r coachRepo) listActive(match func(model.CoachRelationship) bool) []model.CoachRelationship {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.CoachRelationship{}
	for _, c := range r.s.coaching {
		if c.IsActive && match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r coachRepo) Update(_ context.Context, rel *model.CoachRelationship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coaching[rel.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = rel.IsActive
	r.s.coaching[rel.ID] = c
	return nil
}
