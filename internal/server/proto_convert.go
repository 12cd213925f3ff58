package server

import (
	"fmt"

	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// stateToProto converts a state message into a well-known Struct so it can
// travel as a binary frame without generated code.
func stateToProto(msg stateMsg) (*structpb.Struct, error) {
	choices := make([]interface{}, len(msg.Choices))
	for i, c := range msg.Choices {
		choices[i] = c
	}
	return structpb.NewStruct(map[string]interface{}{
		"type":          msg.Type,
		"id":            msg.ID,
		"now":           msg.Now,
		"chapter":       msg.Chapter,
		"previous":      msg.Previous,
		"message_index": float64(msg.MessageIndex),
		"text":          msg.Text,
		"reveal":        msg.Reveal,
		"choices":       choices,
		"ending_shown":  msg.EndingShown,
		"ending_name":   msg.EndingName,
		"paused":        msg.Paused,
		"player_name":   msg.PlayerName,
		"scene": map[string]interface{}{
			"background":     msg.Scene.Background,
			"character":      msg.Scene.Character,
			"character_name": msg.Scene.CharacterName,
			"bgm":            msg.Scene.Bgm,
		},
	})
}

// stateFromProto is the inverse of stateToProto.
func stateFromProto(s *structpb.Struct) stateMsg {
	f := s.GetFields()
	msg := stateMsg{
		Type:         f["type"].GetStringValue(),
		ID:           f["id"].GetStringValue(),
		Now:          f["now"].GetNumberValue(),
		Chapter:      f["chapter"].GetStringValue(),
		Previous:     f["previous"].GetStringValue(),
		MessageIndex: int(f["message_index"].GetNumberValue()),
		Text:         f["text"].GetStringValue(),
		Reveal:       f["reveal"].GetStringValue(),
		EndingShown:  f["ending_shown"].GetBoolValue(),
		EndingName:   f["ending_name"].GetStringValue(),
		Paused:       f["paused"].GetBoolValue(),
		PlayerName:   f["player_name"].GetStringValue(),
	}
	for _, v := range f["choices"].GetListValue().GetValues() {
		msg.Choices = append(msg.Choices, v.GetStringValue())
	}
	scene := f["scene"].GetStructValue().GetFields()
	msg.Scene = sceneDTO{
		Background:    scene["background"].GetStringValue(),
		Character:     scene["character"].GetStringValue(),
		CharacterName: scene["character_name"].GetStringValue(),
		Bgm:           scene["bgm"].GetStringValue(),
	}
	return msg
}

// sendProtoMessage marshals payload and sends it as a binary WebSocket frame
func sendProtoMessage(conn *websocket.Conn, payload proto.Message) error {
	data, err := proto.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}
