package db

import (
	"time"

	"gorm.io/datatypes"
)

type Team struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:64;not null;index"`
	Color     string    `gorm:"size:16;not null"`
	OwnerID   string    `gorm:"size:64;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Players   []Player
}

type Player struct {
	ID        uint      `gorm:"primaryKey"`
	TeamID    uint      `gorm:"index;not null;uniqueIndex:idx_players_team_name"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_players_team_name"`
	Number    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Game struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"size:120;not null"`
	HomeTeamID    uint      `gorm:"index;not null"`
	AwayTeamID    uint      `gorm:"index;not null"`
	PullingTeamID *uint     `gorm:"index"`
	PointsToWin   int       `gorm:"not null;default:15"`
	HomeScore     int       `gorm:"not null;default:0"`
	AwayScore     int       `gorm:"not null;default:0"`
	Status        string    `gorm:"size:32;not null"`
	OwnerID       string    `gorm:"size:64;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Points        []Point
}

type Point struct {
	ID            uint      `gorm:"primaryKey"`
	GameID        uint      `gorm:"index;not null;uniqueIndex:idx_points_game_number"`
	PointNumber   int       `gorm:"not null;uniqueIndex:idx_points_game_number"`
	ScoringTeamID *uint     `gorm:"index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Lineups       []PointLineup
	Events        []Event
}

type PointLineup struct {
	ID        uint      `gorm:"primaryKey"`
	PointID   uint      `gorm:"index;not null;uniqueIndex:idx_point_lineups_point_player"`
	PlayerID  uint      `gorm:"index;not null;uniqueIndex:idx_point_lineups_point_player"`
	TeamID    uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID             uint           `gorm:"primaryKey"`
	PointID        uint           `gorm:"index;not null;uniqueIndex:idx_events_point_sequence"`
	SequenceNumber int            `gorm:"not null;uniqueIndex:idx_events_point_sequence"`
	Type           string         `gorm:"size:32;not null"`
	PlayerID       uint           `gorm:"index;not null"`
	AssistPlayerID *uint          `gorm:"index"`
	TeamID         uint           `gorm:"index;not null"`
	IsTurnover     bool           `gorm:"not null;default:false"`
	Detail         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"not null"`
}
