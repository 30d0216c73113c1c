package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamp is stored as a BSON datetime. Older records carry ISO 8601
// strings, which are parsed on read; unparseable values decode to zero.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if t.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(primitive.NewDateTimeFromTime(t.Time))
}

func (t *Timestamp) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bson.TypeDateTime:
		ms, _ := raw.DateTimeOK()
		*t = NewTimestamp(time.UnixMilli(ms))
	case bson.TypeString:
		s, _ := raw.StringValueOK()
		*t = parseTimestamp(s)
	default:
		*t = Timestamp{}
	}
	return nil
}

func parseTimestamp(s string) Timestamp {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(parsed)
		}
	}
	return Timestamp{}
}
