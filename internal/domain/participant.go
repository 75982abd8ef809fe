package domain

import "encoding/json"

// Participant es una entrada del roster.
type Participant struct {
	Name          string
	DisplayHandle string // en el JSON se llama "slackHandle"
	Available     bool
	LastPicked    bool

	// Raw es el registro tal cual se leyó del store. Los campos que no
	// conocemos sobreviven a cada reescritura.
	Raw json.RawMessage
}

// Roster: el orden define la secuencia de rotación y se respeta en cada save.
type Roster []Participant

// Clone copia el slice (Raw se comparte, nadie lo muta).
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// Available devuelve los participantes elegibles, en orden de roster.
func (r Roster) Available() []Participant {
	out := make([]Participant, 0, len(r))
	for _, p := range r {
		if p.Available {
			out = append(out, p)
		}
	}
	return out
}

func (r Roster) Find(name string) (Participant, bool) {
	for _, p := range r {
		if p.Name == name {
			return p, true
		}
	}
	return Participant{}, false
}

// LastPicked devuelve el primer elegible marcado como último elegido.
func (r Roster) LastPicked() (Participant, bool) {
	for _, p := range r {
		if p.Available && p.LastPicked {
			return p, true
		}
	}
	return Participant{}, false
}
