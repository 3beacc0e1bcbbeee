package nakama

import (
	"testing"

	"president/internal/app"
	"president/internal/domain"
)

func TestCardsFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]interface{}
		want    int
		wantErr bool
	}{
		{name: "pair", fields: map[string]interface{}{"cards": []interface{}{"7H", "7S"}}, want: 2},
		{name: "no cards key", fields: map[string]interface{}{}, wantErr: true},
		{name: "bad card", fields: map[string]interface{}{"cards": []interface{}{"1Z"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := encode(tt.fields)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			cards, err := cardsFromRequest(data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("cardsFromRequest() expected error")
				}
				return
			}
			if err != nil || len(cards) != tt.want {
				t.Fatalf("cardsFromRequest() = %v, %v", cards, err)
			}
		})
	}

	if _, err := cardsFromRequest([]byte{0xff, 0xff}); err == nil {
		t.Fatalf("expected error for garbage payload")
	}
}

func TestEventMessage(t *testing.T) {
	lock := domain.RankSeven
	ev := app.Event{
		Kind:    app.EventTurnRequested,
		GameID:  "g1",
		RoundID: "r1",
		Payload: app.TurnRequestedPayload{UserID: "user-1", Seat: 2, RankLock: &lock},
	}
	opCode, fields, err := eventMessage(ev)
	if err != nil {
		t.Fatalf("eventMessage() error: %v", err)
	}
	if opCode != OpTurnRequested {
		t.Fatalf("opCode = %d, want %d", opCode, OpTurnRequested)
	}
	data, err := encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := decodePayload(t, data)
	if got["rank_lock"] != "7" || got["game_id"] != "g1" || got["kind"] != string(app.EventTurnRequested) {
		t.Fatalf("unexpected payload: %v", got)
	}

	if _, _, err := eventMessage(app.Event{Kind: "bogus", Payload: 42}); err == nil {
		t.Fatalf("expected error for unknown payload")
	}
}
