package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"president/internal/app"
	"president/internal/domain"
)

var labelOptions = protojson.MarshalOptions{EmitUnpopulated: true}

func cardsToValues(cards []domain.Card) []interface{} {
	out := make([]interface{}, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func stringsToValues(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// encode builds the wire form of a message.
func encode(fields map[string]interface{}) ([]byte, error) {
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}
	return proto.Marshal(msg)
}

// decode reads a client message. An empty payload is an empty message.
func decode(data []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	return msg, nil
}

// cardsFromRequest reads the "cards" list of a play or exchange request.
func cardsFromRequest(data []byte) ([]domain.Card, error) {
	msg, err := decode(data)
	if err != nil {
		return nil, err
	}
	list := msg.GetFields()["cards"].GetListValue()
	if list == nil {
		return nil, fmt.Errorf("request has no cards")
	}
	cards := make([]domain.Card, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		c, err := domain.ParseCard(v.GetStringValue())
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// matchLabel renders the JSON label Nakama indexes for match listing.
func matchLabel(open int, state string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":  GameLabel,
		"open":  open,
		"state": state,
	})
	if err != nil {
		return "", err
	}
	b, err := labelOptions.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// eventMessage maps an app event to its op code and payload.
func eventMessage(ev app.Event) (int64, map[string]interface{}, error) {
	fields := map[string]interface{}{
		"game_id":  ev.GameID,
		"round_id": ev.RoundID,
	}
	var opCode int64
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		opCode = OpGameStarted
		fields["seats"] = stringsToValues(p.Seats)
	case app.HandDealtPayload:
		opCode = OpHandDealt
		fields["user_id"] = p.UserID
		fields["hand"] = cardsToValues(p.Hand)
	case app.ExchangeRequestedPayload:
		opCode = OpExchangeRequested
		fields["user_id"] = p.UserID
		fields["count"] = p.Count
		fields["highest"] = p.Highest
	case app.CardsExchangedPayload:
		opCode = OpCardsExchanged
		fields["from_user_id"] = p.FromUserID
		fields["to_user_id"] = p.ToUserID
		fields["cards"] = cardsToValues(p.Cards)
	case app.TurnRequestedPayload:
		opCode = OpTurnRequested
		fields["user_id"] = p.UserID
		fields["seat"] = p.Seat
		fields["last_move"] = cardsToValues(p.LastMove)
		fields["rank_lock"] = nil
		if p.RankLock != nil {
			fields["rank_lock"] = p.RankLock.String()
		}
	case app.CardPlayedPayload:
		opCode = OpCardPlayed
		fields["user_id"] = p.UserID
		fields["seat"] = p.Seat
		fields["cards"] = cardsToValues(p.Cards)
		fields["cards_left"] = p.CardsLeft
	case app.TurnPassedPayload:
		opCode = OpTurnPassed
		fields["user_id"] = p.UserID
		fields["seat"] = p.Seat
		fields["forced"] = p.Forced
	case app.PileChangedPayload:
		opCode = OpPileChanged
		fields["pile"] = cardsToValues(p.Pile)
	case app.TrickWonPayload:
		opCode = OpTrickWon
		fields["winner_user_id"] = p.WinnerUserID
		fields["reason"] = p.Reason
		fields["cards"] = cardsToValues(p.Cards)
		fields["next_leader"] = p.NextLeader
	case app.PlayerFinishedPayload:
		opCode = OpPlayerFinished
		fields["user_id"] = p.UserID
		fields["seat"] = p.Seat
		fields["position"] = p.Position
	case app.RoundEndedPayload:
		opCode = OpRoundEnded
		fields["round"] = p.Round
		ranking := make([]interface{}, len(p.Ranking))
		for i, r := range p.Ranking {
			ranking[i] = map[string]interface{}{
				"user_id": r.UserID,
				"seat":    r.Seat,
				"role":    r.Role.String(),
				"points":  r.Points,
			}
		}
		fields["ranking"] = ranking
	default:
		return 0, nil, fmt.Errorf("unknown event payload %T for %s", ev.Payload, ev.Kind)
	}
	fields["kind"] = string(ev.Kind)
	return opCode, fields, nil
}
