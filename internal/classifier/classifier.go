package classifier

// Label is the outcome of matching a token address against the curated list.
type Label string

const (
	LabelBullish Label = "bullish"
	LabelNeutral Label = "neutral"
)

// Entry is one curated address and the tag it was listed under.
type Entry struct {
	Address string `mapstructure:"address"`
	Label   string `mapstructure:"label"`
}

// DefaultEntries is the curated bullish list shipped with the service.
var DefaultEntries = []Entry{
	{Address: "8fb5D1zmjU9Bs7V2oqjtf47SwajCAgi4jzN6Nr5md3Ns", Label: "smore"},
	{Address: "EHit91cQUuJMe5vJUrP7cFmR2jFSx3jncVUXERpApump", Label: "palms"},
	{Address: "9kG8CWxdNeZzg8PLHTaFYmH6ihD1JMegRE1y6G8Dpump", Label: "goatse"},
	{Address: "2wUGjvMqXusgfzYP3Vj149bSM9MwTPLS4maxkdGfpump", Label: "soleng"},
}

// Classifier is a read-only lookup table. It is safe for concurrent use
// because nothing mutates it after New returns.
type Classifier struct {
	tags map[string]string
}

// New builds the table from entries, skipping blank addresses.
func New(entries []Entry) *Classifier {
	tags := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Address == "" {
			continue
		}
		tags[e.Address] = e.Label
	}
	return &Classifier{tags: tags}
}

// Classify reports LabelBullish for listed addresses and LabelNeutral otherwise.
// Addresses are compared exactly; base58 mints are case sensitive.
func (c *Classifier) Classify(address string) Label {
	if _, ok := c.tags[address]; ok {
		return LabelBullish
	}
	return LabelNeutral
}

// Tag returns the descriptive tag recorded for address, if any.
func (c *Classifier) Tag(address string) (string, bool) {
	tag, ok := c.tags[address]
	return tag, ok
}

// Len is the number of listed addresses.
func (c *Classifier) Len() int {
	return len(c.tags)
}
