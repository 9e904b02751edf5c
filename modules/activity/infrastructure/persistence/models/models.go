package models

type Activity struct {
	ID          uint
	RetromatID  int
	Language    string
	Phase       int
	Name        string
	Summary     string
	Description string
	Duration    string
	Source      string
	More        string
	Suitable    string
}

type Activity2 struct {
	ID            uint
	RetromatID    int
	DefaultLocale string
	Phase         int
	Duration      string
	Source        string
	More          string
	Suitable      string
}

type Activity2Translation struct {
	ID          uint
	Activity2ID uint
	Locale      string
	Name        string
	Summary     string
	Description string
}
