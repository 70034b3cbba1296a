// Package report turns a contact query into rows and renders them for
// terminals.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tomz197/collide/internal/physics"
)

// BodyRow is one body as shown to a user.
type BodyRow struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Position [3]float64 `json:"position"`
	Rotation float64    `json:"rotation"`
	Mass     float64    `json:"mass"`
	Inertia  float64    `json:"inertia"`
}

// ContactRow is one colliding pair.
type ContactRow struct {
	A      string     `json:"a"`
	B      string     `json:"b"`
	Point  [3]float64 `json:"point"`
	Vector [3]float64 `json:"vector"`
	Depth  float64    `json:"depth"`
}

// Report is everything a front end needs to show a query.
type Report struct {
	Bodies   []BodyRow    `json:"bodies"`
	Contacts []ContactRow `json:"contacts"`
}

// Build snapshots w's bodies and pairs them with contacts.
func Build(w *physics.World, contacts []physics.PairContact) (Report, error) {
	bodies, err := w.Snapshot()
	if err != nil {
		return Report{}, err
	}
	r := Report{
		Bodies:   make([]BodyRow, 0, len(bodies)),
		Contacts: make([]ContactRow, 0, len(contacts)),
	}
	for _, b := range bodies {
		kind := "?"
		if c, ok := w.Collider(b.ID); ok {
			kind = string(c.Kind())
		}
		r.Bodies = append(r.Bodies, BodyRow{
			ID:       b.ID,
			Name:     b.Name,
			Kind:     kind,
			Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
			Rotation: b.Rotation,
			Mass:     b.Mass,
			Inertia:  b.Inertia,
		})
	}
	for _, pc := range contacts {
		if pc.A < 0 || pc.B < 0 || pc.A >= len(bodies) || pc.B >= len(bodies) {
			return Report{}, fmt.Errorf("contact %d/%d refers to a missing body", pc.A, pc.B)
		}
		c := pc.Contact
		r.Contacts = append(r.Contacts, ContactRow{
			A:      bodies[pc.A].Name,
			B:      bodies[pc.B].Name,
			Point:  [3]float64{c.Point.X, c.Point.Y, c.Point.Z},
			Vector: [3]float64{c.Vector.X, c.Vector.Y, c.Vector.Z},
			Depth:  c.Depth(),
		})
	}
	return r, nil
}

// Render draws the body and contact tables. Styles come from re so SSH
// sessions get colours matching their own terminal. width <= 0 lets the
// tables size themselves.
func Render(re *lipgloss.Renderer, width int, r Report) string {
	title := re.NewStyle().Bold(true)
	header := re.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)
	hit := re.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 1)
	muted := re.NewStyle().Faint(true)

	styleFunc := func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	}

	bodies := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(muted).
		StyleFunc(styleFunc).
		Headers("ID", "NAME", "SHAPE", "POSITION", "ROT", "MASS", "INERTIA")
	for _, b := range r.Bodies {
		bodies.Row(
			fmt.Sprint(b.ID), b.Name, b.Kind, vec(b.Position),
			num(b.Rotation), num(b.Mass), num(b.Inertia),
		)
	}

	var sb strings.Builder
	sb.WriteString(title.Render(fmt.Sprintf("Bodies (%d)", len(r.Bodies))))
	sb.WriteString("\n")
	if width > 0 {
		bodies.Width(width)
	}
	sb.WriteString(bodies.Render())
	sb.WriteString("\n\n")

	sb.WriteString(title.Render(fmt.Sprintf("Contacts (%d)", len(r.Contacts))))
	sb.WriteString("\n")
	if len(r.Contacts) == 0 {
		sb.WriteString(muted.Render("no colliding pairs"))
		sb.WriteString("\n")
		return sb.String()
	}

	contacts := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 4 {
				return hit
			}
			return cell
		}).
		Headers("A", "B", "POINT", "VECTOR", "DEPTH")
	for _, c := range r.Contacts {
		contacts.Row(c.A, c.B, vec(c.Point), vec(c.Vector), num(c.Depth))
	}
	if width > 0 {
		contacts.Width(width)
	}
	sb.WriteString(contacts.Render())
	sb.WriteString("\n")
	return sb.String()
}

func num(f float64) string {
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return fmt.Sprintf("%.4g", f)
}

func vec(v [3]float64) string {
	return fmt.Sprintf("(%s, %s, %s)", num(v[0]), num(v[1]), num(v[2]))
}
