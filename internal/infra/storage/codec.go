package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// Claves del registro en disco. El handle se sigue llamando slackHandle
// aunque la plataforma sea Discord, para no romper data.json existentes.
const (
	keyName       = "name"
	keyHandle     = "slackHandle"
	keyAvailable  = "available"
	keyLastPicked = "lastPicked"
)

func decodeRoster(data []byte) (domain.Roster, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", domain.ErrCorruptState)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a list of participants", domain.ErrCorruptState)
	}

	var (
		out  domain.Roster
		err  error
		seen = map[string]struct{}{}
	)
	root.ForEach(func(_, rec gjson.Result) bool {
		var p domain.Participant
		p, err = decodeParticipant(rec)
		if err != nil {
			err = fmt.Errorf("%w: entry %d: %v", domain.ErrCorruptState, len(out), err)
			return false
		}
		if _, dup := seen[p.Name]; dup {
			err = fmt.Errorf("%w: duplicate participant %q", domain.ErrCorruptState, p.Name)
			return false
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeParticipant(rec gjson.Result) (domain.Participant, error) {
	if !rec.IsObject() {
		return domain.Participant{}, fmt.Errorf("not an object")
	}
	name := rec.Get(keyName)
	if name.Type != gjson.String || name.Str == "" {
		return domain.Participant{}, fmt.Errorf("missing name")
	}
	handle := rec.Get(keyHandle)
	if handle.Exists() && handle.Type != gjson.String && handle.Type != gjson.Null {
		return domain.Participant{}, fmt.Errorf("%s: %s must be a string", name.Str, keyHandle)
	}
	available, err := boolField(rec, keyAvailable)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("%s: %w", name.Str, err)
	}
	last, err := boolField(rec, keyLastPicked)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("%s: %w", name.Str, err)
	}
	return domain.Participant{
		Name:          name.Str,
		DisplayHandle: handle.String(),
		Available:     available,
		LastPicked:    last,
		Raw:           json.RawMessage(rec.Raw),
	}, nil
}

// boolField: ausente o null cuenta como false.
func boolField(rec gjson.Result, key string) (bool, error) {
	v := rec.Get(key)
	switch v.Type {
	case gjson.True:
		return true, nil
	case gjson.False, gjson.Null:
		return false, nil
	}
	return false, fmt.Errorf("%s must be a boolean", key)
}

// encodeRoster parte del registro original de cada participante y pisa solo
// los campos conocidos; el resto queda en su lugar. Sale indentado a 2 espacios.
func encodeRoster(r domain.Roster) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		rec, err := encodeParticipant(p)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", p.Name, err)
		}
		buf.Write(rec)
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeParticipant(p domain.Participant) ([]byte, error) {
	rec := []byte("{}")
	if len(p.Raw) > 0 {
		rec = append([]byte(nil), p.Raw...)
	}

	var err error
	if rec, err = sjson.SetBytes(rec, keyName, p.Name); err != nil {
		return nil, err
	}
	if p.DisplayHandle != "" || gjson.GetBytes(rec, keyHandle).Exists() {
		if rec, err = sjson.SetBytes(rec, keyHandle, p.DisplayHandle); err != nil {
			return nil, err
		}
	}
	if rec, err = sjson.SetBytes(rec, keyAvailable, p.Available); err != nil {
		return nil, err
	}
	if rec, err = sjson.SetBytes(rec, keyLastPicked, p.LastPicked); err != nil {
		return nil, err
	}
	return rec, nil
}
