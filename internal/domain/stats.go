package domain

// Statistics summarises the corpus for the statistics endpoint.
type Statistics struct {
	UniqueWords           int
	TotalEntries          int
	EtymologyTypes        int
	RepeatedWords         int
	TotalVariants         int
	EtymologyDistribution []EtymologyCount
	MostRepeated          []RepeatedWord
}

// EtymologyCount is the number of entries tagged with one etymology type.
type EtymologyCount struct {
	EtymologyType string
	Count         int
}

// RepeatedWord is a headword that occurs more than once.
type RepeatedWord struct {
	Word        string
	Occurrences int
}
