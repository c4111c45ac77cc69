package model

import "time"

// Todo はToDoリストの1項目を表す。
type Todo struct {
	ID        string
	UserID    string
	Content   string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FoodItem は食事記録の1項目を表す。
// 栄養素の数量はグラム、カロリーはkcal単位。
type FoodItem struct {
	ID        string
	UserID    string
	Name      string
	Carbs     float64
	Protein   float64
	Calories  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exercise は運動記録の1項目を表す。
type Exercise struct {
	ID              string
	UserID          string
	Name            string
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SleepEntry は睡眠記録の1項目を表す。
type SleepEntry struct {
	ID            string
	UserID        string
	Quality       string
	DurationHours float64
	SleptOn       time.Time // 日付のみ使用
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CalendarEvent はカレンダーの予定を表す。
// EventTimeは"14:30"のような表示用の時刻文字列で、日時計算には使用しない。
type CalendarEvent struct {
	ID          string
	UserID      string
	Title       string
	Description string
	StartDate   time.Time
	EventTime   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
