package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"clearpoint_av/internal/domain/entities"
	"clearpoint_av/internal/domain/pricing"
	"clearpoint_av/internal/domain/revision"
	"clearpoint_av/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
	ErrInvalidQuoteInput  = errors.New("invalid quote input")
	ErrQuoteHasNoOptions  = errors.New("quote must keep at least one option")
	ErrQuoteNotEditable   = errors.New("quote is no longer editable")
	ErrQuoteNotSendable   = errors.New("quote cannot be sent in its current status")
	ErrQuoteNotAcceptable = errors.New("quote cannot be accepted in its current status")
	ErrOptionNotFound     = errors.New("quote option not found")
)

// CreateQuoteInput carries the quote-level settings chosen on creation.
// Options start from defaults; equipment and labor are filled in later.
type CreateQuoteInput struct {
	UserID     string
	QuoteName  string
	CustomerID string

	CustomerTypeForPricing entities.CustomerType
	PricingModel           entities.PricingModel

	ShippingCustomerPercentage float64
	ShippingCompanyPercentage  float64
	TaxRate                    float64
	DiscountType               entities.DiscountType
	DiscountValue              float64
	ExpirationTimeline         entities.ExpirationTimeline
}

// IQuoteUseCase exposes the quote lifecycle operations.
//
// Totals embedded in options are a display cache: every operation that
// touches quote inputs recomputes them through the pricing engine before
// persisting.
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, input CreateQuoteInput) (entities.Quote, error)
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
	ListQuotes(ctx context.Context, userID string) ([]entities.Quote, error)
	UpdateOptions(ctx context.Context, quoteID string, options []entities.QuoteOption) (entities.Quote, error)
	PreviewTotals(ctx context.Context, q entities.Quote) (entities.Quote, error)
	SendQuote(ctx context.Context, id string) (entities.Quote, error)
	AcceptQuote(ctx context.Context, id, optionID, signature string) (entities.Quote, error)
	RequestChanges(ctx context.Context, id, note string) (entities.Quote, error)
	RecordView(ctx context.Context, id string) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo      interfaces.IQuoteRepository
	resources interfaces.IResourceRepository
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, resources interfaces.IResourceRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, resources: resources}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, input CreateQuoteInput) (entities.Quote, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.QuoteName = strings.TrimSpace(input.QuoteName)
	if input.UserID == "" || input.QuoteName == "" {
		return entities.Quote{}, ErrInvalidQuoteInput
	}

	customerType := input.CustomerTypeForPricing
	if customerType == "" {
		customerType = entities.CustomerTypeResidential
	}
	pricingModel := input.PricingModel
	if pricingModel == "" {
		pricingModel = entities.PricingModelCustom
	}
	expiration := input.ExpirationTimeline
	if expiration == "" {
		expiration = entities.ExpirationNever
	}
	discountType := input.DiscountType
	if discountType == "" {
		discountType = entities.DiscountTypeFixed
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		QuoteNumber: newQuoteNumber(now),
		QuoteName:   input.QuoteName,
		Status:      entities.QuoteStatusDraft,
		CustomerID:  strings.TrimSpace(input.CustomerID),

		CustomerTypeForPricing: customerType,
		PricingModel:           pricingModel,

		Options: []entities.QuoteOption{newDefaultOption(1)},

		ShippingCustomerPercentage: input.ShippingCustomerPercentage,
		ShippingCompanyPercentage:  input.ShippingCompanyPercentage,
		TaxRate:                    input.TaxRate,
		DiscountType:               discountType,
		DiscountValue:              input.DiscountValue,
		ExpirationTimeline:         expiration,

		CreatedAt: now,
		UpdatedAt: now,
	}

	log.Printf("[quote][usecase] create quote_id=%s number=%s user_id=%s", q.ID, q.QuoteNumber, q.UserID)
	return u.repo.Create(ctx, q)
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	// Sent quotes past their expiry flip to expired on read.
	if q.Status == entities.QuoteStatusSent && q.ExpiresAt != nil && time.Now().UTC().After(*q.ExpiresAt) {
		q.Status = entities.QuoteStatusExpired
		q.UpdatedAt = time.Now().UTC()
		log.Printf("[quote][usecase] expired quote_id=%s expires_at=%s", q.ID, q.ExpiresAt.Format(time.RFC3339))
		return u.repo.Update(ctx, q)
	}

	return q, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, userID string) ([]entities.Quote, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidQuoteInput
	}
	return u.repo.ListByUserID(ctx, userID)
}

// UpdateOptions replaces the option tree and recomputes every totals cache.
func (u *QuoteUseCase) UpdateOptions(ctx context.Context, quoteID string, options []entities.QuoteOption) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if len(options) == 0 {
		return entities.Quote{}, ErrQuoteHasNoOptions
	}

	q, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status == entities.QuoteStatusAccepted || q.Status == entities.QuoteStatusExpired {
		return entities.Quote{}, ErrQuoteNotEditable
	}

	q.Options = options
	if err := u.recomputeTotals(ctx, &q); err != nil {
		return entities.Quote{}, err
	}
	q.UpdatedAt = time.Now().UTC()

	log.Printf("[quote][usecase] update-options quote_id=%s options=%d", q.ID, len(q.Options))
	return u.repo.Update(ctx, q)
}

// PreviewTotals runs the pricing engine over a quote without persisting
// anything, for live recalculation while editing.
func (u *QuoteUseCase) PreviewTotals(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if len(q.Options) == 0 {
		return entities.Quote{}, ErrQuoteHasNoOptions
	}
	if err := u.recomputeTotals(ctx, &q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (u *QuoteUseCase) SendQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	switch q.Status {
	case entities.QuoteStatusDraft, entities.QuoteStatusSent, entities.QuoteStatusPendingChanges:
	default:
		return entities.Quote{}, ErrQuoteNotSendable
	}

	now := time.Now().UTC()
	if q.SentAt == nil {
		q.SentAt = &now
		if days := q.ExpirationTimeline.Days(); days > 0 {
			expires := now.AddDate(0, 0, days)
			q.ExpiresAt = &expires
		}
		q.ChangeLog = append(q.ChangeLog, entities.ChangeLogEntry{
			Timestamp:   now,
			Description: "Quote sent",
		})
		log.Printf("[quote][usecase] first send quote_id=%s expires_at=%v", q.ID, q.ExpiresAt)
	} else {
		q.RevisionNumber++
		description := fmt.Sprintf("Revision Sent (Rev %d)", q.RevisionNumber)
		if summary := revision.GenerateDiffSummary(q.OriginalOptionsForDiff, q.Options, q.RevisionNumber); summary != "" {
			description = fmt.Sprintf("Revision Sent (Rev %d):\n%s", q.RevisionNumber, summary)
		}
		q.ChangeLog = append(q.ChangeLog, entities.ChangeLogEntry{
			Timestamp:   now,
			Description: description,
		})
		log.Printf("[quote][usecase] resend quote_id=%s revision=%d", q.ID, q.RevisionNumber)
	}

	snapshot, err := cloneOptions(q.Options)
	if err != nil {
		return entities.Quote{}, err
	}
	q.OriginalOptionsForDiff = snapshot
	q.Status = entities.QuoteStatusSent
	q.UpdatedAt = now

	return u.repo.Update(ctx, q)
}

func (u *QuoteUseCase) AcceptQuote(ctx context.Context, id, optionID, signature string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	optionID = strings.TrimSpace(optionID)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if optionID == "" {
		return entities.Quote{}, ErrInvalidQuoteInput
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusSent && q.Status != entities.QuoteStatusPendingChanges {
		return entities.Quote{}, ErrQuoteNotAcceptable
	}

	option, ok := q.OptionByID(optionID)
	if !ok {
		return entities.Quote{}, ErrOptionNotFound
	}

	now := time.Now().UTC()
	q.Status = entities.QuoteStatusAccepted
	q.AcceptedAt = &now
	q.AcceptedOptionID = option.ID
	q.Signature = strings.TrimSpace(signature)
	q.ChangeLog = append(q.ChangeLog, entities.ChangeLogEntry{
		Timestamp:   now,
		Description: fmt.Sprintf("Quote accepted (%s)", option.Name),
	})
	q.UpdatedAt = now

	log.Printf("[quote][usecase] accept quote_id=%s option_id=%s", q.ID, option.ID)
	return u.repo.Update(ctx, q)
}

func (u *QuoteUseCase) RequestChanges(ctx context.Context, id, note string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusSent {
		return entities.Quote{}, ErrQuoteNotEditable
	}

	now := time.Now().UTC()
	description := "Changes requested"
	if note = strings.TrimSpace(note); note != "" {
		description = "Changes requested: " + note
	}
	q.Status = entities.QuoteStatusPendingChanges
	q.ChangeLog = append(q.ChangeLog, entities.ChangeLogEntry{
		Timestamp:   now,
		Description: description,
	})
	q.UpdatedAt = now

	log.Printf("[quote][usecase] request-changes quote_id=%s", q.ID)
	return u.repo.Update(ctx, q)
}

func (u *QuoteUseCase) RecordView(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	q.ViewHistory = append(q.ViewHistory, entities.QuoteView{Timestamp: time.Now().UTC()})
	return u.repo.Update(ctx, q)
}

// recomputeTotals rebuilds every totals cache on the quote: per labor
// category and per option. The resource index combines the shared registry
// with the quote-local subcontractor list.
func (u *QuoteUseCase) recomputeTotals(ctx context.Context, q *entities.Quote) error {
	registry, err := u.resources.ListResources(ctx)
	if err != nil {
		return err
	}
	index := pricing.NewResourceIndex(append(registry, q.Subcontractors...))

	for i := range q.Options {
		for j := range q.Options[i].LaborCategories {
			q.Options[i].LaborCategories[j].Totals = pricing.CalculateLaborCategoryTotals(q.Options[i].LaborCategories[j], index)
		}
		q.Options[i].Totals = pricing.CalculateTotals(q.Options[i], *q, index)
	}
	return nil
}

// cloneOptions deep-copies the option tree for the revision snapshot.
func cloneOptions(options []entities.QuoteOption) ([]entities.QuoteOption, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	var out []entities.QuoteOption
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func newDefaultOption(position int) entities.QuoteOption {
	return entities.QuoteOption{
		ID:              uuid.NewString(),
		Name:            fmt.Sprintf("Option %d", position),
		Areas:           []entities.QuoteArea{{ID: uuid.NewString(), Name: "Area 1", Items: []entities.QuoteItem{}}},
		LaborCategories: entities.DefaultLaborCategories(),
		SimpleLabor:     &entities.SimpleLabor{NumDays: 1, Rate: 100, AssignedTechnicians: []entities.AssignedResource{}},
	}
}

func newQuoteNumber(now time.Time) string {
	return fmt.Sprintf("Q-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
