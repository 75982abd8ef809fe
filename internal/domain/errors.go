package domain

import "errors"

var (
	ErrNoAvailableParticipants = errors.New("no available participants")
	ErrNoActiveAnnouncement    = errors.New("no active announcement to edit")
	ErrCorruptState            = errors.New("roster state is corrupt")
	ErrIOFailure               = errors.New("roster io failure")
	ErrDispatchFailure         = errors.New("message dispatch failed")
)
