package quote

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/domain"
)

// Wall fields accepted by UpdateWall.
const (
	FieldWidth  = "width"
	FieldHeight = "height"
)

// Messages shown when a quote cannot be submitted yet.
const (
	MsgNoValidWalls = "Por favor, preencha as medidas de pelo menos uma parede."
	MsgNoTexture    = "Por favor, selecione uma textura."
)

// IDGenerator returns a fresh wall id.
type IDGenerator func() string

// NewWallID is the default IDGenerator.
func NewWallID() string {
	return uuid.NewString()
}

// Session is the editable state behind one product's quote form.
// It always holds at least one wall. A Session is not safe for concurrent use.
type Session struct {
	ProductID string `json:"productId"`
	Walls     []Wall `json:"walls"`
	Texture   string `json:"texture"`

	// Compatible lists the textures the product is offered in.
	Compatible []string `json:"compatible"`

	// Price is per roll; invalid when the product carries no price.
	Price decimal.NullDecimal `json:"price"`

	newID IDGenerator
}

// NewSession opens a quote for product with one empty wall and the product's
// first texture selected.
func NewSession(product domain.Product, newID IDGenerator) *Session {
	if newID == nil {
		newID = NewWallID
	}
	s := &Session{
		ProductID:  product.ID,
		Compatible: append([]string(nil), product.Textures...),
		Price:      product.Price,
		newID:      newID,
	}
	if len(product.Textures) > 0 {
		s.Texture = product.Textures[0]
	}
	s.Walls = []Wall{{ID: newID()}}
	return s
}

// SetIDGenerator replaces the wall id source, e.g. after decoding a stored session.
func (s *Session) SetIDGenerator(newID IDGenerator) {
	s.newID = newID
}

// AddWall appends an unmeasured wall and returns it.
func (s *Session) AddWall() Wall {
	if s.newID == nil {
		s.newID = NewWallID
	}
	w := Wall{ID: s.newID()}
	s.Walls = append(s.Walls, w)
	return w
}

// RemoveWall deletes the wall with id. It never removes the last wall and
// reports whether anything changed.
func (s *Session) RemoveWall(id string) bool {
	if len(s.Walls) <= 1 {
		return false
	}
	for i, w := range s.Walls {
		if w.ID == id {
			s.Walls = append(s.Walls[:i:i], s.Walls[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateWall sets width or height on the wall with id. Input that does not
// parse as a finite number is stored as 0.
func (s *Session) UpdateWall(id, field, value string) error {
	if field != FieldWidth && field != FieldHeight {
		return domain.Errorf(domain.EINVALID, "quote.update_wall", "Campo inválido: %s", field)
	}
	for i := range s.Walls {
		if s.Walls[i].ID != id {
			continue
		}
		n := ParseMeasurement(value)
		if field == FieldWidth {
			s.Walls[i].Width = n
		} else {
			s.Walls[i].Height = n
		}
		return nil
	}
	return domain.NotFound("quote.update_wall", "Parede", id)
}

// SelectTexture switches the active texture. Names the product is not offered
// in are ignored; the return value reports whether the selection changed.
func (s *Session) SelectTexture(name string) bool {
	for _, t := range s.Compatible {
		if t == name {
			s.Texture = name
			return true
		}
	}
	return false
}

// Estimate is everything derived from the wall list.
type Estimate struct {
	Requirements []RollRequirement
	TotalRolls   int
	ValidWalls   []Wall

	// EstimatedPrice is TotalRolls times the roll price, when known.
	EstimatedPrice decimal.NullDecimal
}

// Estimate recomputes the derived values from the current walls.
func (s *Session) Estimate() Estimate {
	return NewEstimate(s.Walls, s.Price)
}

// NewEstimate runs the calculator over walls and prices the total.
func NewEstimate(walls []Wall, price decimal.NullDecimal) Estimate {
	reqs := CalculateRolls(walls)
	total := TotalRolls(reqs)
	e := Estimate{
		Requirements: reqs,
		TotalRolls:   total,
		ValidWalls:   ValidWalls(walls),
	}
	if price.Valid {
		e.EstimatedPrice = decimal.NewNullDecimal(price.Decimal.Mul(decimal.NewFromInt(int64(total))))
	}
	return e
}

// Requirement returns the calculator output for one wall.
func (e Estimate) Requirement(wallID string) RollRequirement {
	for _, r := range e.Requirements {
		if r.WallID == wallID {
			return r
		}
	}
	return RollRequirement{WallID: wallID}
}

// Validate blocks submission until at least one wall is measured and a
// texture is selected.
func (s *Session) Validate() error {
	var err error
	if len(ValidWalls(s.Walls)) == 0 {
		err = domain.AddFieldError(err, "quote.submit", "walls", MsgNoValidWalls)
	}
	if s.Texture == "" {
		err = domain.AddFieldError(err, "quote.submit", "texture", MsgNoTexture)
	}
	return err
}

// Message composes the order text for product using the session state.
func (s *Session) Message(product domain.Product, collection string) string {
	e := s.Estimate()
	return ComposeMessage(MessageInput{
		ProductName:   product.Name,
		ProductNumber: product.Number,
		Collection:    collection,
		Texture:       s.Texture,
		Walls:         s.Walls,
		Requirements:  e.Requirements,
		TotalRolls:    e.TotalRolls,
	})
}

// ParseMeasurement converts form input to centimeters. Commas are accepted
// as decimal separators; anything else unparseable becomes 0. Values above
// MaxMeasurement are capped.
func ParseMeasurement(value string) float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return capMeasurement(n)
}
