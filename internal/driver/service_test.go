package driver

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/util"
)

type stubDriverRepo struct {
	drivers map[uuid.UUID]Driver
	updates int
	failAll error
}

func (s *stubDriverRepo) List(ctx context.Context) ([]Driver, error) {
	out := make([]Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		out = append(out, d)
	}
	return out, nil
}

func (s *stubDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (*Driver, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *stubDriverRepo) Create(ctx context.Context, input CreateInput) (*Driver, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	d := Driver{
		ID:          uuid.New(),
		Name:        input.Name,
		CPF:         input.CPF,
		Phone:       input.Phone,
		CNH:         input.CNH,
		CNHCategory: input.CNHCategory,
		CNHExpiry:   input.CNHExpiry,
		Status:      "active",
	}
	if s.drivers == nil {
		s.drivers = make(map[uuid.UUID]Driver)
	}
	s.drivers[d.ID] = d
	return &d, nil
}

func (s *stubDriverRepo) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Driver, error) {
	s.updates++
	if s.failAll != nil {
		return nil, s.failAll
	}
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	if input.Name != nil {
		d.Name = *input.Name
	}
	if input.Status != nil {
		d.Status = *input.Status
	}
	s.drivers[id] = d
	return &d, nil
}

func (s *stubDriverRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.drivers[id]; !ok {
		return ErrNotFound
	}
	delete(s.drivers, id)
	return nil
}

func (s *stubDriverRepo) ToggleStatus(ctx context.Context, id uuid.UUID) (*Driver, error) {
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	if d.Status == "active" {
		d.Status = "inactive"
	} else {
		d.Status = "active"
	}
	s.drivers[id] = d
	return &d, nil
}

func validDriverInput() CreateInput {
	return CreateInput{
		Name:        "José Carlos",
		CPF:         "123.456.789-00",
		Phone:       "(11) 98877-6655",
		CNH:         "01234567890",
		CNHCategory: "E",
		CNHExpiry:   "2027-03-10",
	}
}

func TestCreateRejectsInvalidInputAsValidation(t *testing.T) {
	repo := &stubDriverRepo{}
	svc := NewService(repo)

	cases := []struct {
		name  string
		mut   func(*CreateInput)
	}{
		{"missing name", func(in *CreateInput) { in.Name = " " }},
		{"missing cpf", func(in *CreateInput) { in.CPF = "" }},
		{"bad cnh category", func(in *CreateInput) { in.CNHCategory = "B" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validDriverInput()
			tc.mut(&input)

			_, err := svc.Create(context.Background(), input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *util.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *util.ValidationError, got %T: %v", err, err)
			}
		})
	}
	if len(repo.drivers) != 0 {
		t.Fatalf("invalid input must not reach the store, got %d records", len(repo.drivers))
	}
}

func TestUpdateEmptyPatchReturnsSameRecord(t *testing.T) {
	repo := &stubDriverRepo{}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validDriverInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	same, err := svc.Update(context.Background(), created.ID, UpdateInput{})
	if err != nil {
		t.Fatalf("empty patch failed: %v", err)
	}
	if !reflect.DeepEqual(same, created) {
		t.Fatalf("empty patch must return the record unchanged: %+v vs %+v", same, created)
	}
	if repo.updates != 0 {
		t.Fatalf("empty patch must not write to the store, got %d updates", repo.updates)
	}
}

func TestUpdateStoreFailureIsNotValidation(t *testing.T) {
	repo := &stubDriverRepo{}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validDriverInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	repo.failAll = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	name := "Outro Nome"
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Name: &name})
	if err == nil {
		t.Fatal("expected store failure to surface")
	}
	var ve *util.ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("store failure must not be classified as validation: %v", err)
	}
}
