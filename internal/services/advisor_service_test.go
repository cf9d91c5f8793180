package services

import (
	"context"
	"errors"
	"testing"

	api_models "virtualagent-backend/internal/models"

	"github.com/google/uuid"
)

func TestAdvisorService_CRUDRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewAdvisorService(&fakeStore{})
	ctx := context.Background()

	created, err := svc.CreateAdvisor(ctx, api_models.CreateAdvisorRequest{
		FirstName: "Marie",
		LastName:  "Durand",
		Email:     "marie@example.com",
		Position:  "Account Manager",
	})
	if err != nil {
		t.Fatalf("CreateAdvisor: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created advisor has nil ID")
	}

	got, err := svc.GetAdvisor(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetAdvisor: %v", err)
	}
	if got.Email != "marie@example.com" || got.Position != "Account Manager" {
		t.Fatalf("advisor = %+v", got)
	}

	newPhone := "+33 6 00 00 00 00"
	updated, err := svc.UpdateAdvisor(ctx, created.ID, api_models.UpdateAdvisorRequest{Phone: &newPhone})
	if err != nil {
		t.Fatalf("UpdateAdvisor: %v", err)
	}
	if updated.Phone != newPhone {
		t.Fatalf("phone = %q, want %q", updated.Phone, newPhone)
	}
	if updated.FirstName != "Marie" {
		t.Fatal("partial update clobbered an unrelated field")
	}

	list, err := svc.ListAdvisors(ctx)
	if err != nil {
		t.Fatalf("ListAdvisors: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	if err := svc.DeleteAdvisor(ctx, created.ID); err != nil {
		t.Fatalf("DeleteAdvisor: %v", err)
	}
	if _, err := svc.GetAdvisor(ctx, created.ID); !errors.Is(err, ErrAdvisorNotFound) {
		t.Fatalf("err after delete = %v, want ErrAdvisorNotFound", err)
	}
}

func TestAdvisorService_Validation(t *testing.T) {
	t.Parallel()

	svc := NewAdvisorService(&fakeStore{})
	ctx := context.Background()

	cases := []api_models.CreateAdvisorRequest{
		{LastName: "Durand", Email: "a@b.com"},
		{FirstName: "Marie", Email: "a@b.com"},
		{FirstName: "Marie", LastName: "Durand"},
		{FirstName: "Marie", LastName: "Durand", Email: "not-an-email"},
	}
	for _, req := range cases {
		if _, err := svc.CreateAdvisor(ctx, req); !errors.Is(err, ErrAdvisorValidation) {
			t.Fatalf("CreateAdvisor(%+v): err = %v, want ErrAdvisorValidation", req, err)
		}
	}
}

func TestAdvisorService_UnknownID(t *testing.T) {
	t.Parallel()

	svc := NewAdvisorService(&fakeStore{})

	if _, err := svc.GetAdvisor(context.Background(), uuid.New()); !errors.Is(err, ErrAdvisorNotFound) {
		t.Fatalf("err = %v, want ErrAdvisorNotFound", err)
	}
	if err := svc.DeleteAdvisor(context.Background(), uuid.New()); !errors.Is(err, ErrAdvisorNotFound) {
		t.Fatalf("err = %v, want ErrAdvisorNotFound", err)
	}
}
