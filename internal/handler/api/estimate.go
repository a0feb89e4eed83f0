package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/quote"
	"github.com/dukerupert/maremansa/internal/service"
)

// Estimator runs a stateless roll estimate.
type Estimator interface {
	Estimate(ctx context.Context, req service.EstimateRequest) (*service.EstimateResult, error)
}

// EstimateHandler handles POST /api/quotes/estimate
type EstimateHandler struct {
	estimator Estimator
	validate  *validator.Validate
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimator Estimator) *EstimateHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("maxcm", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() <= quote.MaxMeasurement
	})
	return &EstimateHandler{estimator: estimator, validate: v}
}

// EstimateRequest is the JSON body of POST /api/quotes/estimate.
type EstimateRequest struct {
	ProductID string      `json:"productId" validate:"omitempty,max=64"`
	Texture   string      `json:"texture" validate:"omitempty,max=64"`
	Walls     []WallInput `json:"walls" validate:"required,min=1,max=50,dive"`
}

// WallInput is one wall in centimeters. Zero means not measured.
type WallInput struct {
	ID     string  `json:"id" validate:"omitempty,max=64"`
	Width  float64 `json:"width" validate:"gte=0,maxcm"`
	Height float64 `json:"height" validate:"gte=0,maxcm"`
}

// EstimateResponse is the estimate plus, when product and texture are
// known, the composed order message and its WhatsApp link.
type EstimateResponse struct {
	Requirements   []quote.RollRequirement `json:"requirements"`
	TotalRolls     int                     `json:"totalRolls"`
	ValidWalls     int                     `json:"validWalls"`
	EstimatedPrice decimal.NullDecimal     `json:"estimatedPrice"`
	Message        string                  `json:"message,omitempty"`
	Link           string                  `json:"link,omitempty"`
}

// ServeHTTP handles POST /api/quotes/estimate
func (h *EstimateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handler.ErrorResponse(w, r, domain.Errorf(domain.ETOOLARGE, "api.estimate", "Requisição muito grande"))
			return
		}
		handler.ErrorResponse(w, r, domain.Invalid("api.estimate", "JSON inválido"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		handler.ValidationErrorResponse(w, r, toValidationError(err))
		return
	}

	walls := make([]quote.Wall, len(req.Walls))
	for i, in := range req.Walls {
		id := in.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		walls[i] = quote.Wall{ID: id, Width: in.Width, Height: in.Height}
	}

	res, err := h.estimator.Estimate(r.Context(), service.EstimateRequest{
		ProductID: req.ProductID,
		Texture:   req.Texture,
		Walls:     walls,
	})
	if err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, EstimateResponse{
		Requirements:   res.Requirements,
		TotalRolls:     res.TotalRolls,
		ValidWalls:     res.ValidWalls,
		EstimatedPrice: res.EstimatedPrice,
		Message:        res.Message,
		Link:           res.Link,
	})
}

// toValidationError converts validator output into field errors keyed by
// JSON path, e.g. "walls[0].width".
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid("api.estimate", "Requisição inválida")
	}

	var out error
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out = domain.AddFieldError(out, "api.estimate", field, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "min":
		return fmt.Sprintf("Informe ao menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("Máximo de %s", fe.Param())
	case "gte":
		return "O valor não pode ser negativo"
	case "maxcm":
		return fmt.Sprintf("O valor deve ser no máximo %s cm", quote.FormatCentimeters(quote.MaxMeasurement))
	default:
		return "Valor inválido"
	}
}
