// Package rotation tiene las dos reglas para elegir al deploy champion.
// Son funciones puras: reciben el roster y devuelven el elegido y el roster
// actualizado, no tocan el store.
package rotation

import (
	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// PickNext es el round-robin circular: el sucesor del último elegido entre
// los disponibles. Sin elegido previo arranca por el primero.
func PickNext(r domain.Roster) (domain.Participant, domain.Roster, error) {
	avail := r.Available()
	if len(avail) == 0 {
		return domain.Participant{}, nil, domain.ErrNoAvailableParticipants
	}

	last := -1
	for i, p := range avail {
		if p.LastPicked {
			last = i
			break
		}
	}
	champion := avail[(last+1)%len(avail)]
	return markPicked(r, champion)
}

// PickReroll es la regla del botón: saca a previous del pool y se queda con
// el primer disponible que no esté marcado como último elegido; si todos lo
// están, el primero del pool.
func PickReroll(r domain.Roster, previous string) (domain.Participant, domain.Roster, error) {
	pool := make([]domain.Participant, 0, len(r))
	for _, p := range r {
		if p.Available && p.Name != previous {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return domain.Participant{}, nil, domain.ErrNoAvailableParticipants
	}

	champion := pool[0]
	for _, p := range pool {
		if !p.LastPicked {
			champion = p
			break
		}
	}
	return markPicked(r, champion)
}

// markPicked reescribe el flag en todo el roster (no solo en los disponibles),
// así queda a lo sumo un lastPicked=true después de cada llamada.
func markPicked(r domain.Roster, champion domain.Participant) (domain.Participant, domain.Roster, error) {
	out := r.Clone()
	for i := range out {
		out[i].LastPicked = out[i].Name == champion.Name
	}
	champion.LastPicked = true
	return champion, out, nil
}
