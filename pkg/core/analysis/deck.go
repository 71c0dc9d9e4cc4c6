package analysis

import (
	"regexp"
	"strings"
)

// Slide is one parsed slide of a generated pitch deck.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// pitchDeckTemplate is the client-facing deck prompt. Chart and diagram
// payloads are embedded as [CHART]/[DIAGRAM] blocks so the frontend can
// render real visuals instead of placeholders.
const pitchDeckTemplate = `Act as a senior investment banking analyst creating a client-facing pitch deck for {company} ({ticker}) suitable for senior executives.

**Global Instructions:**
- **Layouts:** For every slide, you MUST use a professional corporate slide layout. Instead of text placeholders like "[Visual: ...]", generate the actual data for the visual in a structured format. Use professional tables, charts with data, and diagrams with items.
- **Style:** The tone must be professional, clean, and corporate. The content should be boardroom-ready with a neutral color palette, consistent fonts, and balanced spacing.
- **Conciseness:** Keep each slide concise and visually polished.
- **Formatting:** Generate multiple slides using markdown. Each slide must have a clear title starting with '###'.
- **Consistency:** You **MUST** generate all 9 slides in the specified order. Do not skip slides, even if data is sparse. Populate all chart and diagram data with realistic, company-specific information based on your search capabilities; do not use the placeholder data provided in the examples.

**Required Slides & Visual Formats:**

### 1. {company} ({ticker}) Company Overview
- Generate a clean overview with key facts (HQ, Founded, Employees), business model summary, and market positioning.
- Use a markdown table for the key facts.

### 2. {company} ({ticker}) Public Market Overview & NTM EBITDA Evolution
- Present a dual-axis chart analysis. Provide concise commentary on market trends and performance drivers.
- **MUST** include the chart data in this exact format, replacing placeholder values with realistic data for {company}:
[CHART type="bar-line-combo" title="Revenue & NTM EBITDA Margin Evolution"]
Year,Revenue (USD M),NTM EBITDA Margin (%)
2020,50000,15
2021,55000,16
2022,62000,18
2023,68000,17
2024,75000,19
[/CHART]

### 3. {company} ({ticker}) Stock Price Performance vs Peer
- Show a comparative analysis of stock price performance. Generate *representative, illustrative* data for {company}.
- **MUST** include the chart data in this exact format, replacing placeholder values with realistic data for {company}:
[CHART type="line" title="Stock Price Performance (Normalized)"]
Date,{ticker},Peer Index
Jan 2022,100,100
Jul 2022,110,105
Jan 2023,125,115
Jul 2023,140,120
Jan 2024,155,130
[/CHART]

### 4. Broker Perspectives on {company} ({ticker})
- Summarize broker ratings in a professional markdown table with columns: Broker, Rating, Price Target.
- **MUST** include a sentiment chart data in this exact format, replacing placeholder values with realistic data for {company}:
[CHART type="donut" title="Broker Rating Distribution"]
Rating,Count
Buy,12
Hold,8
Sell,2
[/CHART]

### 5. Trading Multiples
- Create a clean, professional markdown table comparing {company} ({ticker}) to its peers.
- Columns: Company, Scale (Market Cap), Revenue Growth (NTM %), Profitability Margin (NTM EBITDA %), FV/Revenue (NTM), FV/EBITDA (NTM).

### 6. Diagram Showing Growth of {company} ({ticker})
- Illustrate the company's growth trajectory using a diagram.
- **MUST** include the diagram items in this exact format, replacing placeholder items with realistic milestones for {company}:
[DIAGRAM type="timeline"]
2018: Launched flagship product to critical acclaim.
2020: Expanded into European and Asian markets.
2022: Acquired a key technology startup to bolster R&D.
2024: Reached 100 million active users milestone.
[/DIAGRAM]

### 7. {company} ({ticker}) Built Through M&A
- Detail the company's acquisition history. Use a diagram.
- **MUST** include the diagram items in this exact format, replacing placeholder items with realistic M&A history for {company}:
[DIAGRAM type="flow"]
Acquired TechCorp (2019): Gained key AI patents and talent.
Merged with DataLytics (2021): Expanded data analytics capabilities.
Purchased Innovate Inc. (2023): Entered a new adjacent market segment.
[/DIAGRAM]

### 8. {company} ({ticker}) Opportunities to Expand
- Outline potential future growth vectors using a roadmap diagram.
- **MUST** include the diagram items in this exact format, replacing placeholder items with realistic opportunities for {company}:
[DIAGRAM type="roadmap"]
New Markets: Expand operations into Latin America and Africa.
Product Adjacencies: Launch new software suite for enterprise clients.
Strategic Partnerships: Form alliances with major cloud providers.
[/DIAGRAM]

### 9. {company} ({ticker}) Other Companies Overview
- Provide a comparative overview of other key players in the sector using a markdown table.
- Highlight {company} ({ticker})'s key differentiators and competitive positioning.
`

func pitchDeckPrompt(ticker, companyName string) string {
	return strings.NewReplacer(
		"{company}", companyName,
		"{ticker}", ticker,
	).Replace(pitchDeckTemplate)
}

var (
	slideBoundary = regexp.MustCompile(`\n(?:#{1,3} |Slide [0-9]+:?)`)
	slidePrefix   = regexp.MustCompile(`#{1,3} ?|Slide [0-9]+:? ?`)
)

// ParseSlides splits generated deck markdown into slides on heading
// boundaries ("# ", "## ", "### " or "Slide N:"). Content that yields no
// slides comes back as a single "Generated Content" slide.
func ParseSlides(text string) []Slide {
	var starts []int
	for _, loc := range slideBoundary.FindAllStringIndex(text, -1) {
		starts = append(starts, loc[0]+1) // keep the heading, drop the newline
	}

	var blocks []string
	prev := 0
	for _, s := range starts {
		blocks = append(blocks, text[prev:s])
		prev = s
	}
	blocks = append(blocks, text[prev:])

	var slides []Slide
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		title := strings.TrimSpace(slidePrefix.ReplaceAllString(lines[0], ""))
		content := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		slides = append(slides, Slide{Title: title, Content: content})
	}

	if len(slides) == 0 {
		return []Slide{{Title: "Generated Content", Content: text}}
	}
	return slides
}
