package viewmodels

type LocaleCount struct {
	Locale string
	Count  int64
}

type DashboardPage struct {
	Locale       string
	Activities   int64
	Activity2    int64
	Translations []LocaleCount
}

type Sequence struct {
	ID           int
	Groups       []string
	Combinations int
}

type Group struct {
	ID    string
	Terms []string
}

type TitlesPage struct {
	Locale            string
	Sequences         []Sequence
	Groups            []Group
	TotalCombinations int
}

type Title struct {
	ID   string
	Text string
}

type SequencePage struct {
	Locale                 string
	SequenceID             int
	Groups                 []string
	CombinationsInSequence int
	TotalCombinations      int
	Query                  string
	Titles                 []Title
}

type EmailPage struct {
	Subject   string
	Recipient string
}
