package service

import (
	"errors"
	"fmt"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

func announcementText(champion domain.Participant) string {
	return fmt.Sprintf("🚀 Time to deploy changes! %s, you're up today.", champion.DisplayHandle)
}

func rerolledText(champion domain.Participant) string {
	return fmt.Sprintf("🎲 New deploy champion: %s", champion.DisplayHandle)
}

func manualRerollText(champion domain.Participant) string {
	return fmt.Sprintf("🔁 Manual reroll: %s is now today's deploy champion.", champion.DisplayHandle)
}

// errorText es lo que ve el usuario cuando un comando o botón falla.
func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoAvailableParticipants):
		return "⚠️ Nobody in the roster is available to be deploy champion."
	case errors.Is(err, domain.ErrNoActiveAnnouncement):
		return "⚠️ There is no announcement to update. Use `/rerollchampion` to post a new one."
	case errors.Is(err, domain.ErrCorruptState):
		return "⚠️ The roster could not be read: " + err.Error()
	case errors.Is(err, domain.ErrIOFailure):
		return "⚠️ The roster could not be saved: " + err.Error()
	case errors.Is(err, domain.ErrDispatchFailure):
		return "⚠️ The announcement could not be sent: " + err.Error()
	}
	return "⚠️ Something went wrong: " + err.Error()
}
