package service

import (
	"sync"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// AnnouncementTracker recuerda el último anuncio publicado para poder
// editarlo. Vive en memoria: arranca vacío y se pierde al reiniciar.
type AnnouncementTracker struct {
	mu  sync.RWMutex
	ref domain.MessageRef
	set bool
}

func NewAnnouncementTracker() *AnnouncementTracker { return &AnnouncementTracker{} }

// RecordPost pisa el anuncio anterior.
func (t *AnnouncementTracker) RecordPost(ref domain.MessageRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ref = ref
	t.set = true
}

func (t *AnnouncementTracker) Current() (domain.MessageRef, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ref, t.set
}
