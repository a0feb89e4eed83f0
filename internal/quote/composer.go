package quote

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MessageInput carries everything the order message mentions.
type MessageInput struct {
	ProductName   string
	ProductNumber string
	Collection    string
	Texture       string

	// Walls is the full wall list; Requirements must be parallel to it.
	Walls        []Wall
	Requirements []RollRequirement
	TotalRolls   int
}

// ComposeMessage renders the WhatsApp order text.
//
// Only measured walls get a breakdown line, numbered by their position in the
// full list so "Parede 2" stays "Parede 2" when wall 1 is still empty.
func ComposeMessage(in MessageInput) string {
	var b strings.Builder

	b.WriteString("Olá! Gostaria de solicitar um orçamento:\n\n")
	fmt.Fprintf(&b, "*Produto:* %s (N.º %s)\n", in.ProductName, in.ProductNumber)
	fmt.Fprintf(&b, "*Coleção:* %s\n", in.Collection)
	fmt.Fprintf(&b, "*Textura:* %s\n\n", in.Texture)
	b.WriteString("*Medidas das Paredes*\n")
	b.WriteString(strings.Join(breakdownLines(in.Walls, in.Requirements), "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "*Total estimado:* %d rolo(s)\n\n", in.TotalRolls)
	b.WriteString("Aguardo retorno. Obrigado!")

	return b.String()
}

func breakdownLines(walls []Wall, reqs []RollRequirement) []string {
	lines := make([]string, 0, len(walls))
	for i, w := range walls {
		if !w.Valid() {
			continue
		}
		rolls := 0
		if i < len(reqs) {
			rolls = reqs[i].RollCount
		}
		lines = append(lines, fmt.Sprintf("Parede %d: %scm (L) x %scm (A) = %d rolo(s)",
			i+1, FormatCentimeters(w.Width), FormatCentimeters(w.Height), rolls))
	}
	return lines
}

// FormatCentimeters prints a measurement in its shortest form (300, 250.5).
func FormatCentimeters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// componentUnescapes restores the characters encodeURIComponent leaves alone.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeMessage escapes text for a URL query value the way browsers'
// encodeURIComponent does: spaces become %20 and newlines %0A.
func EscapeMessage(message string) string {
	return componentUnescapes.Replace(url.QueryEscape(message))
}

// MessageLink builds the chat link for a phone number, e.g.
// https://wa.me/5521994408290?text=Ol%C3%A1...
func MessageLink(baseURL, phone, message string) string {
	base := strings.TrimSuffix(baseURL, "/")
	return base + "/" + phone + "?text=" + EscapeMessage(message)
}
