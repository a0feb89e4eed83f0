package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/dukerupert/maremansa/internal/cookie"
	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/quote"
	"github.com/dukerupert/maremansa/internal/service"
)

// QuoteManager is the quote session API the form drives.
type QuoteManager interface {
	Open(ctx context.Context, sessionID, productID string) (*service.Quote, error)
	AddWall(ctx context.Context, sessionID, productID string) (*service.Quote, error)
	RemoveWall(ctx context.Context, sessionID, productID, wallID string) (*service.Quote, error)
	UpdateWall(ctx context.Context, sessionID, productID, wallID, field, value string) (*service.Quote, error)
	UpdateWalls(ctx context.Context, sessionID, productID string, walls []quote.Wall) (*service.Quote, error)
	SelectTexture(ctx context.Context, sessionID, productID, texture string) (*service.Quote, error)
	Submit(ctx context.Context, sessionID, productID string) (*service.Submission, error)
	Close(ctx context.Context, sessionID, productID string) error
}

// QuoteHandler handles the quote form under /products/{id}/quote.
//
// Every POST first saves the wall measurements currently in the form, so
// adding a wall or switching texture never loses typed input. Successful
// mutations redirect back to the form (303).
type QuoteHandler struct {
	quotes     QuoteManager
	catalog    CatalogLoader
	renderer   *handler.Renderer
	cookies    *cookie.Config
	sessionTTL time.Duration
	collection string
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes QuoteManager, loader CatalogLoader, renderer *handler.Renderer, cookieConfig *cookie.Config, sessionTTL time.Duration, collection string) *QuoteHandler {
	return &QuoteHandler{
		quotes:     quotes,
		catalog:    loader,
		renderer:   renderer,
		cookies:    cookieConfig,
		sessionTTL: sessionTTL,
		collection: collection,
	}
}

// QuotePageData contains data for the quote template
type QuotePageData struct {
	PageData
	Product    domain.Product
	Textures   []TextureChoice
	Walls      []WallRow
	Estimate   quote.Estimate
	CanRemove  bool
	Error      string
	ActionURL  string
	ProductURL string
}

// TextureChoice is a selectable texture swatch.
type TextureChoice struct {
	domain.Texture
	Selected bool
}

// WallRow is one wall of the form with its roll preview.
type WallRow struct {
	Number      int
	Wall        quote.Wall
	Requirement quote.RollRequirement
}

// View handles GET /products/{id}/quote
func (h *QuoteHandler) View(w http.ResponseWriter, r *http.Request) {
	sid, err := EnsureQuoteSession(w, r, h.cookies, h.sessionTTL)
	if err != nil {
		handler.InternalErrorResponse(w, r, err)
		return
	}

	q, err := h.quotes.Open(r.Context(), sid, r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, q, "")
}

// AddWall handles POST /products/{id}/quote/walls
func (h *QuoteHandler) AddWall(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sid, pid string) error {
		_, err := h.quotes.AddWall(ctx, sid, pid)
		return err
	})
}

// UpdateWall handles POST /products/{id}/quote/walls/{wallID}
// with "width" and/or "height" form values.
func (h *QuoteHandler) UpdateWall(w http.ResponseWriter, r *http.Request) {
	wallID := r.PathValue("wallID")
	h.mutate(w, r, func(ctx context.Context, sid, pid string) error {
		for _, field := range []string{quote.FieldWidth, quote.FieldHeight} {
			if _, ok := r.Form[field]; !ok {
				continue
			}
			if _, err := h.quotes.UpdateWall(ctx, sid, pid, wallID, field, r.Form.Get(field)); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveWall handles POST /products/{id}/quote/walls/{wallID}/remove
func (h *QuoteHandler) RemoveWall(w http.ResponseWriter, r *http.Request) {
	wallID := r.PathValue("wallID")
	h.mutate(w, r, func(ctx context.Context, sid, pid string) error {
		_, err := h.quotes.RemoveWall(ctx, sid, pid, wallID)
		return err
	})
}

// SelectTexture handles POST /products/{id}/quote/texture
func (h *QuoteHandler) SelectTexture(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sid, pid string) error {
		_, err := h.quotes.SelectTexture(ctx, sid, pid, r.Form.Get("texture"))
		return err
	})
}

// Submit handles POST /products/{id}/quote/submit
//
// A complete quote redirects to the WhatsApp link. An incomplete one
// re-renders the form with status 422 and the validation message.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid := r.PathValue("id")

	sid, ok := h.prepare(w, r)
	if !ok {
		return
	}

	if texture := r.Form.Get("texture"); texture != "" {
		if _, err := h.quotes.SelectTexture(ctx, sid, pid, texture); err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	sub, err := h.quotes.Submit(ctx, sid, pid)
	if err != nil {
		if domain.ErrorCode(err) != domain.EINVALID {
			handler.ErrorResponse(w, r, err)
			return
		}
		q, openErr := h.quotes.Open(ctx, sid, pid)
		if openErr != nil {
			handler.ErrorResponse(w, r, openErr)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, q, domain.ErrorMessage(err))
		return
	}

	http.Redirect(w, r, sub.Link, http.StatusSeeOther)
}

// Close handles POST /products/{id}/quote/close
func (h *QuoteHandler) Close(w http.ResponseWriter, r *http.Request) {
	pid := r.PathValue("id")
	if err := h.quotes.Close(r.Context(), GetQuoteSessionID(r), pid); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	http.Redirect(w, r, productURL(pid), http.StatusSeeOther)
}

// prepare resolves the session and saves the form's measurements.
func (h *QuoteHandler) prepare(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("quote.form", "Formulário inválido"))
		return "", false
	}

	sid, err := EnsureQuoteSession(w, r, h.cookies, h.sessionTTL)
	if err != nil {
		handler.InternalErrorResponse(w, r, err)
		return "", false
	}

	if walls := WallsFromForm(r); len(walls) > 0 {
		if _, err := h.quotes.UpdateWalls(r.Context(), sid, r.PathValue("id"), walls); err != nil {
			handler.ErrorResponse(w, r, err)
			return "", false
		}
	}
	return sid, true
}

func (h *QuoteHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, sid, pid string) error) {
	sid, ok := h.prepare(w, r)
	if !ok {
		return
	}

	pid := r.PathValue("id")
	if err := fn(r.Context(), sid, pid); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, quoteURL(pid), http.StatusSeeOther)
}

func (h *QuoteHandler) render(w http.ResponseWriter, r *http.Request, status int, q *service.Quote, message string) {
	snapshot := h.catalog.Load(r.Context())

	textures := snapshot.TexturesFor(q.Product)
	choices := make([]TextureChoice, 0, len(textures))
	for _, t := range textures {
		choices = append(choices, TextureChoice{Texture: t, Selected: t.Name == q.Session.Texture})
	}

	rows := make([]WallRow, 0, len(q.Session.Walls))
	for i, wall := range q.Session.Walls {
		rows = append(rows, WallRow{
			Number:      i + 1,
			Wall:        wall,
			Requirement: q.Estimate.Requirement(wall.ID),
		})
	}

	data := QuotePageData{
		PageData:   BaseTemplateData(r, h.collection, "Comprar "+q.Product.Name),
		Product:    q.Product,
		Textures:   choices,
		Walls:      rows,
		Estimate:   q.Estimate,
		CanRemove:  len(rows) > 1,
		Error:      message,
		ActionURL:  quoteURL(q.Product.ID),
		ProductURL: productURL(q.Product.ID),
	}

	h.renderer.RenderHTTPStatus(w, status, "storefront/quote", data)
}

// WallsFromForm reads the measurements of every wall listed in the form.
// Each wall posts its id as "wall_id" with "width_<id>" and "height_<id>".
func WallsFromForm(r *http.Request) []quote.Wall {
	ids := r.Form["wall_id"]
	walls := make([]quote.Wall, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		walls = append(walls, quote.Wall{
			ID:     id,
			Width:  quote.ParseMeasurement(r.Form.Get(quote.FieldWidth + "_" + id)),
			Height: quote.ParseMeasurement(r.Form.Get(quote.FieldHeight + "_" + id)),
		})
	}
	return walls
}
