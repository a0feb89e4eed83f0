package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/events"
	"github.com/dukerupert/maremansa/internal/quote"
	"github.com/dukerupert/maremansa/internal/telemetry"
)

// ProductLookup resolves a product by id.
type ProductLookup interface {
	Product(ctx context.Context, id string) (domain.Product, error)
}

// QuoteConfig holds the hand-off settings for submitted quotes.
type QuoteConfig struct {
	Collection      string
	WhatsAppBaseURL string
	WhatsAppNumber  string
}

// Quote is a product paired with its quote session and derived estimate.
type Quote struct {
	Product  domain.Product
	Session  *quote.Session
	Estimate quote.Estimate
}

// Submission is the result of a successful submit.
type Submission struct {
	Quote   *Quote
	Message string
	Link    string
}

// QuoteService manages server-side quote sessions, one per browser session
// and product.
type QuoteService struct {
	products  ProductLookup
	store     SessionStore
	publisher events.Publisher
	cfg       QuoteConfig
	logger    *slog.Logger
	metrics   *telemetry.BusinessMetrics
	newID     quote.IDGenerator
	now       func() time.Time
}

// NewQuoteService creates a QuoteService. A nil publisher discards events.
func NewQuoteService(products ProductLookup, store SessionStore, publisher events.Publisher, cfg QuoteConfig, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *QuoteService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &QuoteService{
		products:  products,
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		newID:     quote.NewWallID,
		now:       time.Now,
	}
}

// SetIDGenerator overrides the wall id source.
func (s *QuoteService) SetIDGenerator(newID quote.IDGenerator) {
	s.newID = newID
}

// Open returns the stored quote for the product, starting a fresh one when
// none exists.
func (s *QuoteService) Open(ctx context.Context, sessionID, productID string) (*Quote, error) {
	return s.mutate(ctx, sessionID, productID, nil)
}

// AddWall appends an empty wall.
func (s *QuoteService) AddWall(ctx context.Context, sessionID, productID string) (*Quote, error) {
	q, err := s.mutate(ctx, sessionID, productID, func(sess *quote.Session) error {
		sess.AddWall()
		return nil
	})
	if err == nil {
		s.metrics.RecordWallAdded()
	}
	return q, err
}

// RemoveWall deletes a wall. Removing the last wall is a no-op.
func (s *QuoteService) RemoveWall(ctx context.Context, sessionID, productID, wallID string) (*Quote, error) {
	return s.mutate(ctx, sessionID, productID, func(sess *quote.Session) error {
		sess.RemoveWall(wallID)
		return nil
	})
}

// UpdateWall sets one dimension of a wall from raw form input.
func (s *QuoteService) UpdateWall(ctx context.Context, sessionID, productID, wallID, field, value string) (*Quote, error) {
	return s.mutate(ctx, sessionID, productID, func(sess *quote.Session) error {
		return sess.UpdateWall(wallID, field, value)
	})
}

// UpdateWalls sets both dimensions of several walls at once. Unknown wall
// ids are skipped.
func (s *QuoteService) UpdateWalls(ctx context.Context, sessionID, productID string, walls []quote.Wall) (*Quote, error) {
	return s.mutate(ctx, sessionID, productID, func(sess *quote.Session) error {
		for _, w := range walls {
			for i := range sess.Walls {
				if sess.Walls[i].ID == w.ID {
					sess.Walls[i].Width = w.Width
					sess.Walls[i].Height = w.Height
				}
			}
		}
		return nil
	})
}

// SelectTexture switches the selected texture. Incompatible names are ignored.
func (s *QuoteService) SelectTexture(ctx context.Context, sessionID, productID, texture string) (*Quote, error) {
	return s.mutate(ctx, sessionID, productID, func(sess *quote.Session) error {
		sess.SelectTexture(texture)
		return nil
	})
}

// Submit validates the quote, composes the order message and returns the
// WhatsApp link. The QuoteRequested event is published best effort.
func (s *QuoteService) Submit(ctx context.Context, sessionID, productID string) (*Submission, error) {
	q, err := s.Open(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}

	if err := q.Session.Validate(); err != nil {
		for field := range domain.GetValidationFields(err) {
			s.metrics.RecordQuoteRejected(field)
		}
		return nil, err
	}

	message := q.Session.Message(q.Product, s.cfg.Collection)
	link := quote.MessageLink(s.cfg.WhatsAppBaseURL, s.cfg.WhatsAppNumber, message)

	value := -1.0
	if q.Estimate.EstimatedPrice.Valid {
		value = q.Estimate.EstimatedPrice.Decimal.InexactFloat64()
	}
	s.metrics.RecordQuoteRequested(q.Product.Number, q.Session.Texture, q.Estimate.TotalRolls, value)

	event := events.QuoteRequested{
		Event:          events.EventQuoteRequested,
		QuoteID:        uuid.NewString(),
		ProductID:      q.Product.ID,
		ProductNumber:  q.Product.Number,
		ProductName:    q.Product.Name,
		Texture:        q.Session.Texture,
		Walls:          q.Estimate.ValidWalls,
		Requirements:   q.Estimate.Requirements,
		TotalRolls:     q.Estimate.TotalRolls,
		EstimatedPrice: q.Estimate.EstimatedPrice,
		RequestedAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishQuoteRequested(ctx, event); err != nil {
		s.logger.Warn("failed to publish quote event",
			"error", err,
			"product_id", productID,
			"quote_id", event.QuoteID,
		)
	}

	s.logger.Info("quote requested",
		"product_id", q.Product.ID,
		"texture", q.Session.Texture,
		"total_rolls", q.Estimate.TotalRolls,
		"quote_id", event.QuoteID,
	)

	return &Submission{Quote: q, Message: message, Link: link}, nil
}

// Close discards the quote so the next Open starts over.
func (s *QuoteService) Close(ctx context.Context, sessionID, productID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionKey(sessionID, productID)); err != nil {
		s.metrics.RecordSessionStoreError("delete")
		return domain.Unavailable(err, "quote.close", "Não foi possível encerrar o orçamento")
	}
	return nil
}

// EstimateRequest is a stateless estimate for a set of walls.
type EstimateRequest struct {
	ProductID string
	Texture   string
	Walls     []quote.Wall
}

// EstimateResult carries the calculator output and, when a product is
// given, the composed message and link.
type EstimateResult struct {
	Requirements   []quote.RollRequirement
	TotalRolls     int
	ValidWalls     int
	EstimatedPrice decimal.NullDecimal
	Message        string
	Link           string
}

// Estimate runs the calculator without touching any session.
func (s *QuoteService) Estimate(ctx context.Context, req EstimateRequest) (*EstimateResult, error) {
	var price decimal.NullDecimal
	var product domain.Product
	if req.ProductID != "" {
		p, err := s.products.Product(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		product = p
		price = p.Price
		if req.Texture != "" && !p.HasTexture(req.Texture) {
			return nil, domain.NewValidationError("quote.estimate", "texture", "Textura indisponível para este produto")
		}
	}

	e := quote.NewEstimate(req.Walls, price)
	res := &EstimateResult{
		Requirements:   e.Requirements,
		TotalRolls:     e.TotalRolls,
		ValidWalls:     len(e.ValidWalls),
		EstimatedPrice: e.EstimatedPrice,
	}

	if product.ID != "" && req.Texture != "" && len(e.ValidWalls) > 0 {
		res.Message = quote.ComposeMessage(quote.MessageInput{
			ProductName:   product.Name,
			ProductNumber: product.Number,
			Collection:    s.cfg.Collection,
			Texture:       req.Texture,
			Walls:         req.Walls,
			Requirements:  e.Requirements,
			TotalRolls:    e.TotalRolls,
		})
		res.Link = quote.MessageLink(s.cfg.WhatsAppBaseURL, s.cfg.WhatsAppNumber, res.Message)
	}

	s.metrics.RecordAPIEstimate()
	return res, nil
}

// mutate loads or creates the session, applies fn and persists the result.
// A nil fn only persists newly created sessions.
func (s *QuoteService) mutate(ctx context.Context, sessionID, productID string, fn func(*quote.Session) error) (*Quote, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	product, err := s.products.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := sessionKey(sessionID, productID)
	sess, created, err := s.load(ctx, key, product)
	if err != nil {
		return nil, err
	}

	if fn != nil {
		if err := fn(sess); err != nil {
			return nil, err
		}
	}

	if fn != nil || created {
		if err := s.store.Put(ctx, key, sess); err != nil {
			s.metrics.RecordSessionStoreError("put")
			return nil, domain.Unavailable(err, "quote.save", "Não foi possível salvar o orçamento")
		}
	}
	if created {
		s.metrics.RecordQuoteOpened(product.Number)
	}

	return &Quote{Product: product, Session: sess, Estimate: sess.Estimate()}, nil
}

func (s *QuoteService) load(ctx context.Context, key string, product domain.Product) (*quote.Session, bool, error) {
	sess, err := s.store.Get(ctx, key)
	switch {
	case err == nil:
		sess.SetIDGenerator(s.newID)
		// Price and compatible textures follow the current catalog.
		sess.Price = product.Price
		sess.Compatible = append([]string(nil), product.Textures...)
		if sess.Texture != "" && !product.HasTexture(sess.Texture) {
			sess.Texture = ""
			if len(product.Textures) > 0 {
				sess.Texture = product.Textures[0]
			}
		}
		if len(sess.Walls) == 0 {
			sess.AddWall()
		}
		return sess, false, nil
	case errors.Is(err, ErrSessionNotFound):
		return quote.NewSession(product, s.newID), true, nil
	default:
		s.metrics.RecordSessionStoreError("get")
		return nil, false, domain.Unavailable(err, "quote.load", "Não foi possível carregar o orçamento")
	}
}
