package entity

import "github.com/google/uuid"

type ZoneType string

const (
	ZoneTypeRegular ZoneType = "regular"
	ZoneTypePremium ZoneType = "premium"
	ZoneTypeVIP     ZoneType = "vip"
)

type Zone struct {
	Base
	Name     string   `db:"name"`
	ZoneType ZoneType `db:"zone_type"`
}

type SectionPosition string

const (
	SectionPositionLeft   SectionPosition = "left"
	SectionPositionCenter SectionPosition = "center"
	SectionPositionRight  SectionPosition = "right"
)

type Section struct {
	Base
	ZoneID   uuid.UUID       `db:"zone_id"`
	Name     string          `db:"name"`
	Position SectionPosition `db:"position"`
}
