package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clearpoint_av/internal/domain/entities"
	mock_interfaces "clearpoint_av/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	t.Run("missing user id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{QuoteName: "Smith Residence"})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("missing quote name", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{UserID: "user-1", QuoteName: "   "})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("create success with defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || q.UserID != "user-1" || q.QuoteName != "Smith Residence" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.Status != entities.QuoteStatusDraft {
					t.Fatalf("expected draft status, got %s", q.Status)
				}
				if q.CustomerTypeForPricing != entities.CustomerTypeResidential {
					t.Fatalf("expected Residential default, got %s", q.CustomerTypeForPricing)
				}
				if q.PricingModel != entities.PricingModelCustom {
					t.Fatalf("expected custom default, got %s", q.PricingModel)
				}
				if q.ExpirationTimeline != entities.ExpirationNever {
					t.Fatalf("expected Never default, got %s", q.ExpirationTimeline)
				}
				if q.DiscountType != entities.DiscountTypeFixed {
					t.Fatalf("expected fixed default, got %s", q.DiscountType)
				}
				if !strings.HasPrefix(q.QuoteNumber, "Q-") {
					t.Fatalf("unexpected quote number: %s", q.QuoteNumber)
				}
				if len(q.Options) != 1 {
					t.Fatalf("expected one default option, got %d", len(q.Options))
				}
				opt := q.Options[0]
				if opt.Name != "Option 1" {
					t.Fatalf("unexpected option name: %s", opt.Name)
				}
				if len(opt.Areas) != 1 || opt.Areas[0].Name != "Area 1" {
					t.Fatalf("unexpected areas: %+v", opt.Areas)
				}
				if len(opt.LaborCategories) != 4 {
					t.Fatalf("expected four labor categories, got %d", len(opt.LaborCategories))
				}
				if opt.SimpleLabor == nil || opt.SimpleLabor.NumDays != 1 || opt.SimpleLabor.Rate != 100 {
					t.Fatalf("unexpected simple labor: %+v", opt.SimpleLabor)
				}
				if q.CreatedAt.IsZero() || q.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return q, nil
			},
		)

		res, err := uc.CreateQuote(context.Background(), CreateQuoteInput{UserID: " user-1 ", QuoteName: " Smith Residence "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})

	t.Run("create keeps explicit settings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.CustomerTypeForPricing != entities.CustomerTypeSchool || q.PricingModel != entities.PricingModelTiered {
					t.Fatalf("unexpected pricing settings: %+v", q)
				}
				if q.TaxRate != 8.25 || q.DiscountType != entities.DiscountTypePercentage || q.DiscountValue != 5 {
					t.Fatalf("unexpected adjustments: %+v", q)
				}
				return q, nil
			},
		)

		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{
			UserID:                 "user-1",
			QuoteName:              "District AV Refresh",
			CustomerTypeForPricing: entities.CustomerTypeSchool,
			PricingModel:           entities.PricingModelTiered,
			TaxRate:                8.25,
			DiscountType:           entities.DiscountTypePercentage,
			DiscountValue:          5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_GetQuote(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.GetQuote(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.GetQuote(context.Background(), "q-1")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, errors.New("db"))

		_, err := uc.GetQuote(context.Background(), "q-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("sent quote past expiry flips to expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		expired := time.Now().UTC().Add(-24 * time.Hour)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:        "q-1",
			Status:    entities.QuoteStatusSent,
			ExpiresAt: &expired,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Status != entities.QuoteStatusExpired {
					t.Fatalf("expected expired, got %s", q.Status)
				}
				return q, nil
			},
		)

		res, err := uc.GetQuote(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.QuoteStatusExpired {
			t.Fatalf("expected expired status, got %s", res.Status)
		}
	})

	t.Run("sent quote with no expiry stays sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}, nil)

		res, err := uc.GetQuote(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.QuoteStatusSent {
			t.Fatalf("expected sent status, got %s", res.Status)
		}
	})
}

func TestQuoteUseCase_ListQuotes(t *testing.T) {
	t.Run("invalid user id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.ListQuotes(context.Background(), " ")
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().ListByUserID(gomock.Any(), "user-1").Return([]entities.Quote{{ID: "q-1"}, {ID: "q-2"}}, nil)

		res, err := uc.ListQuotes(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 {
			t.Fatalf("expected 2 quotes, got %d", len(res))
		}
	})
}

func TestQuoteUseCase_UpdateOptions(t *testing.T) {
	options := func() []entities.QuoteOption {
		return []entities.QuoteOption{{
			ID:   "opt-1",
			Name: "Option 1",
			Areas: []entities.QuoteArea{{
				ID:   "area-1",
				Name: "Theater",
				Items: []entities.QuoteItem{
					{ID: "item-1", Name: "Display", DealerCost: 100, MSRP: 200, Quantity: 1},
				},
			}},
			LaborCategories: entities.DefaultLaborCategories(),
		}}
	}

	t.Run("invalid id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.UpdateOptions(context.Background(), "", options())
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("no options", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.UpdateOptions(context.Background(), "q-1", nil)
		if !errors.Is(err, ErrQuoteHasNoOptions) {
			t.Fatalf("expected ErrQuoteHasNoOptions, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.UpdateOptions(context.Background(), "q-1", options())
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("accepted quote is not editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusAccepted}, nil)

		_, err := uc.UpdateOptions(context.Background(), "q-1", options())
		if !errors.Is(err, ErrQuoteNotEditable) {
			t.Fatalf("expected ErrQuoteNotEditable, got %v", err)
		}
	})

	t.Run("recomputes totals and persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		resources := mock_interfaces.NewMockIResourceRepository(ctrl)
		uc := NewQuoteUseCase(repo, resources)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:           "q-1",
			Status:       entities.QuoteStatusDraft,
			PricingModel: entities.PricingModelCustom,
		}, nil)
		resources.EXPECT().ListResources(gomock.Any()).Return(nil, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if len(q.Options) != 1 {
					t.Fatalf("expected one option, got %d", len(q.Options))
				}
				totals := q.Options[0].Totals
				if totals.MaterialSellPrice != 200 || totals.MaterialCost != 100 {
					t.Fatalf("unexpected material totals: %+v", totals)
				}
				return q, nil
			},
		)

		res, err := uc.UpdateOptions(context.Background(), "q-1", options())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Options[0].Totals.CustomerPrice <= 0 {
			t.Fatalf("expected positive customer price, got %+v", res.Options[0].Totals)
		}
	})

	t.Run("resource registry error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		resources := mock_interfaces.NewMockIResourceRepository(ctrl)
		uc := NewQuoteUseCase(repo, resources)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusDraft}, nil)
		resources.EXPECT().ListResources(gomock.Any()).Return(nil, errors.New("scan failed"))

		_, err := uc.UpdateOptions(context.Background(), "q-1", options())
		if err == nil || err.Error() != "scan failed" {
			t.Fatalf("expected scan failed, got %v", err)
		}
	})
}

func TestQuoteUseCase_PreviewTotals(t *testing.T) {
	t.Run("no options", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.PreviewTotals(context.Background(), entities.Quote{})
		if !errors.Is(err, ErrQuoteHasNoOptions) {
			t.Fatalf("expected ErrQuoteHasNoOptions, got %v", err)
		}
	})

	t.Run("computes without persisting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		resources := mock_interfaces.NewMockIResourceRepository(ctrl)
		uc := NewQuoteUseCase(nil, resources)

		resources.EXPECT().ListResources(gomock.Any()).Return(nil, nil)

		q := entities.Quote{
			ID:           "q-1",
			PricingModel: entities.PricingModelCustom,
			Options: []entities.QuoteOption{{
				ID: "opt-1",
				Areas: []entities.QuoteArea{{
					ID:    "area-1",
					Items: []entities.QuoteItem{{ID: "item-1", DealerCost: 100, MSRP: 200, Quantity: 2}},
				}},
			}},
		}

		res, err := uc.PreviewTotals(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Options[0].Totals.MaterialSellPrice != 400 {
			t.Fatalf("unexpected material sell price: %+v", res.Options[0].Totals)
		}
	})
}

func TestQuoteUseCase_SendQuote(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.SendQuote(context.Background(), "")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("accepted quote is not sendable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusAccepted}, nil)

		_, err := uc.SendQuote(context.Background(), "q-1")
		if !errors.Is(err, ErrQuoteNotSendable) {
			t.Fatalf("expected ErrQuoteNotSendable, got %v", err)
		}
	})

	t.Run("first send stamps sent_at, expiry and snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		q := entities.Quote{
			ID:                 "q-1",
			Status:             entities.QuoteStatusDraft,
			ExpirationTimeline: entities.Expiration30Days,
			Options:            []entities.QuoteOption{{ID: "opt-1", Name: "Option 1"}},
		}
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, got entities.Quote) (entities.Quote, error) {
				if got.Status != entities.QuoteStatusSent {
					t.Fatalf("expected sent, got %s", got.Status)
				}
				if got.SentAt == nil || got.ExpiresAt == nil {
					t.Fatalf("expected sent_at and expires_at")
				}
				wantExpiry := got.SentAt.AddDate(0, 0, 30)
				if !got.ExpiresAt.Equal(wantExpiry) {
					t.Fatalf("expected expiry %v, got %v", wantExpiry, got.ExpiresAt)
				}
				if got.RevisionNumber != 0 {
					t.Fatalf("first send must not bump revision, got %d", got.RevisionNumber)
				}
				if len(got.ChangeLog) != 1 || got.ChangeLog[0].Description != "Quote sent" {
					t.Fatalf("unexpected change log: %+v", got.ChangeLog)
				}
				if len(got.OriginalOptionsForDiff) != 1 || got.OriginalOptionsForDiff[0].ID != "opt-1" {
					t.Fatalf("expected snapshot of options, got %+v", got.OriginalOptionsForDiff)
				}
				return got, nil
			},
		)

		if _, err := uc.SendQuote(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("never-expiring quote gets no expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:                 "q-1",
			Status:             entities.QuoteStatusDraft,
			ExpirationTimeline: entities.ExpirationNever,
			Options:            []entities.QuoteOption{{ID: "opt-1"}},
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, got entities.Quote) (entities.Quote, error) {
				if got.ExpiresAt != nil {
					t.Fatalf("expected no expiry, got %v", got.ExpiresAt)
				}
				return got, nil
			},
		)

		if _, err := uc.SendQuote(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("resend bumps revision and logs diff summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		sentAt := time.Now().UTC().Add(-48 * time.Hour)
		original := []entities.QuoteOption{{
			ID:   "opt-1",
			Name: "Option 1",
			Areas: []entities.QuoteArea{{
				ID:    "area-1",
				Name:  "Theater",
				Items: []entities.QuoteItem{{ID: "item-1", Name: "Display", Quantity: 2}},
			}},
		}}
		current := []entities.QuoteOption{{
			ID:   "opt-1",
			Name: "Option 1",
			Areas: []entities.QuoteArea{{
				ID:    "area-1",
				Name:  "Theater",
				Items: []entities.QuoteItem{{ID: "item-1", Name: "Display", Quantity: 5}},
			}},
		}}

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:                     "q-1",
			Status:                 entities.QuoteStatusPendingChanges,
			SentAt:                 &sentAt,
			Options:                current,
			OriginalOptionsForDiff: original,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, got entities.Quote) (entities.Quote, error) {
				if got.RevisionNumber != 1 {
					t.Fatalf("expected revision 1, got %d", got.RevisionNumber)
				}
				if len(got.ChangeLog) != 1 {
					t.Fatalf("expected one change log entry, got %d", len(got.ChangeLog))
				}
				entry := got.ChangeLog[0].Description
				if !strings.HasPrefix(entry, "Revision Sent (Rev 1):") {
					t.Fatalf("unexpected change log entry: %q", entry)
				}
				if !strings.Contains(entry, "Changed quantity of Display from 2 to 5") {
					t.Fatalf("expected quantity change in summary, got %q", entry)
				}
				if got.OriginalOptionsForDiff[0].Areas[0].Items[0].Quantity != 5 {
					t.Fatalf("expected snapshot refreshed to current options")
				}
				if got.Status != entities.QuoteStatusSent {
					t.Fatalf("expected sent, got %s", got.Status)
				}
				return got, nil
			},
		)

		if _, err := uc.SendQuote(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_AcceptQuote(t *testing.T) {
	t.Run("missing option id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.AcceptQuote(context.Background(), "q-1", " ", "John Smith")
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("draft quote is not acceptable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusDraft}, nil)

		_, err := uc.AcceptQuote(context.Background(), "q-1", "opt-1", "John Smith")
		if !errors.Is(err, ErrQuoteNotAcceptable) {
			t.Fatalf("expected ErrQuoteNotAcceptable, got %v", err)
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:      "q-1",
			Status:  entities.QuoteStatusSent,
			Options: []entities.QuoteOption{{ID: "opt-1"}},
		}, nil)

		_, err := uc.AcceptQuote(context.Background(), "q-1", "opt-9", "John Smith")
		if !errors.Is(err, ErrOptionNotFound) {
			t.Fatalf("expected ErrOptionNotFound, got %v", err)
		}
	})

	t.Run("accept success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:      "q-1",
			Status:  entities.QuoteStatusSent,
			Options: []entities.QuoteOption{{ID: "opt-1", Name: "Premium"}},
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, got entities.Quote) (entities.Quote, error) {
				if got.Status != entities.QuoteStatusAccepted {
					t.Fatalf("expected accepted, got %s", got.Status)
				}
				if got.AcceptedOptionID != "opt-1" || got.Signature != "John Smith" {
					t.Fatalf("unexpected acceptance fields: %+v", got)
				}
				if got.AcceptedAt == nil {
					t.Fatalf("expected accepted_at")
				}
				if len(got.ChangeLog) != 1 || got.ChangeLog[0].Description != "Quote accepted (Premium)" {
					t.Fatalf("unexpected change log: %+v", got.ChangeLog)
				}
				return got, nil
			},
		)

		res, err := uc.AcceptQuote(context.Background(), "q-1", "opt-1", " John Smith ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.QuoteStatusAccepted {
			t.Fatalf("expected accepted status, got %s", res.Status)
		}
	})
}

func TestQuoteUseCase_RequestChanges(t *testing.T) {
	t.Run("only sent quotes take change requests", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusDraft}, nil)

		_, err := uc.RequestChanges(context.Background(), "q-1", "add a sub")
		if !errors.Is(err, ErrQuoteNotEditable) {
			t.Fatalf("expected ErrQuoteNotEditable, got %v", err)
		}
	})

	t.Run("request changes with note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, got entities.Quote) (entities.Quote, error) {
				if got.Status != entities.QuoteStatusPendingChanges {
					t.Fatalf("expected pending-changes, got %s", got.Status)
				}
				if len(got.ChangeLog) != 1 || got.ChangeLog[0].Description != "Changes requested: add a sub" {
					t.Fatalf("unexpected change log: %+v", got.ChangeLog)
				}
				return got, nil
			},
		)

		if _, err := uc.RequestChanges(context.Background(), "q-1", " add a sub "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_RecordView(t *testing.T) {
	t.Run("appends a view entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, got entities.Quote) (entities.Quote, error) {
				if len(got.ViewHistory) != 1 || got.ViewHistory[0].Timestamp.IsZero() {
					t.Fatalf("unexpected view history: %+v", got.ViewHistory)
				}
				return got, nil
			},
		)

		if _, err := uc.RecordView(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
