package aggregator

import (
	"time"

	"github.com/gpellis87/intel-briefing/app/news"
)

// Degraded-mode safety net: when every provider comes back empty the engine
// serves these fixed stories so the dashboard always has something to
// render. Distinguishable from real data only by the fixed content.

type sampleStory struct {
	title  string
	desc   string
	source string
	url    string
	img    string
}

var sampleStories = map[news.Category][]sampleStory{
	news.CategoryGeneral: {
		{"Congress Reaches Bipartisan Agreement on Infrastructure Spending Bill", "Lawmakers from both parties have come together to support a comprehensive infrastructure package that addresses roads, bridges, and broadband access across the nation.", "Reuters", "https://reuters.com/article1", "https://images.unsplash.com/photo-1529107386315-e1a2ed48a620?w=600"},
		{"Federal Reserve Signals Interest Rate Decision Amid Economic Uncertainty", "The Federal Reserve indicated it may hold steady on interest rates as it monitors inflation data and global economic conditions heading into the next quarter.", "Bloomberg", "https://bloomberg.com/article1", "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?w=600"},
		{"Supreme Court to Hear Landmark Digital Privacy Case", "The nation's highest court will decide whether law enforcement agencies need warrants to access citizens' digital communications and location data.", "The New York Times", "https://nytimes.com/article1", "https://images.unsplash.com/photo-1589829545856-d10d557cf95f?w=600"},
		{"White House Announces New Climate Initiative Partnership", "The administration unveiled a public-private partnership aimed at accelerating clean energy adoption across industrial sectors.", "NPR", "https://npr.org/article1", "https://images.unsplash.com/photo-1473341304170-971dccb5ac1e?w=600"},
		{"Critics Question Government Spending Priorities in New Budget Proposal", "Conservative lawmakers argue the latest budget proposal doesn't adequately address the national debt while expanding social programs.", "Fox News", "https://foxnews.com/article1", "https://images.unsplash.com/photo-1526304640581-d334cdbbf45e?w=600"},
		{"Tech Giants Face New Regulatory Framework in Senate Committee", "A bipartisan group of senators introduced legislation that would impose new transparency requirements on major technology platforms.", "The Wall Street Journal", "https://wsj.com/article1", "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=600"},
		{"Global Markets Rally on Trade Agreement Optimism", "Stock markets around the world surged as negotiators from major economies signaled progress on reducing trade barriers and tariffs.", "CNBC", "https://cnbc.com/article1", "https://images.unsplash.com/photo-1590283603385-17ffb3a7f29f?w=600"},
		{"Immigration Reform Debate Intensifies as Border Numbers Rise", "New data showing increased migration has reignited the political debate over comprehensive immigration reform and border security measures.", "CNN", "https://cnn.com/article1", "https://images.unsplash.com/photo-1532375810709-75b1da00a4b0?w=600"},
	},
	news.CategoryPolitics: {
		{"Progressive Caucus Pushes for Expanded Social Safety Net Programs", "Progressive lawmakers are championing legislation that would significantly expand healthcare, childcare, and housing assistance programs.", "MSNBC", "https://msnbc.com/politics1", "https://images.unsplash.com/photo-1529107386315-e1a2ed48a620?w=600"},
		{"Conservative Think Tanks Propose Alternative Economic Growth Strategy", "Leading conservative policy organizations outlined a plan focused on tax cuts, deregulation, and domestic energy production to boost growth.", "National Review", "https://nationalreview.com/politics1", "https://images.unsplash.com/photo-1526304640581-d334cdbbf45e?w=600"},
		{"Swing State Voters Express Frustration with Both Parties", "Polling from key battleground states reveals growing dissatisfaction with partisan gridlock and a desire for practical solutions.", "The Hill", "https://thehill.com/politics1", "https://images.unsplash.com/photo-1540910419892-4a36d2c3266c?w=600"},
		{"Senate Filibuster Debate Reignites as Key Legislation Stalls", "Calls to reform or eliminate the filibuster have grown louder as major bills continue to fail to reach the 60-vote threshold needed for passage.", "The Washington Post", "https://washingtonpost.com/politics1", "https://images.unsplash.com/photo-1575505586569-646b2ca898fc?w=600"},
	},
	news.CategoryTechnology: {
		{"AI Regulation Framework Takes Shape in Congressional Hearings", "Lawmakers are exploring guardrails for artificial intelligence development, balancing innovation with concerns about job displacement and privacy.", "TechCrunch", "https://techcrunch.com/tech1", "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=600"},
		{"Major Cloud Provider Announces Breakthrough in Quantum Computing", "A leading tech company demonstrated a quantum processor that achieved computational tasks previously thought to be years away.", "Ars Technica", "https://arstechnica.com/tech1", "https://images.unsplash.com/photo-1635070041078-e363dbe005cb?w=600"},
		{"Cybersecurity Firms Warn of Sophisticated New Ransomware Campaigns", "Security researchers have identified a new wave of ransomware attacks targeting critical infrastructure and healthcare systems.", "Wired", "https://wired.com/tech1", "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=600"},
		{"Electric Vehicle Adoption Accelerates as Charging Infrastructure Expands", "New data shows EV sales have doubled year-over-year, driven by expanding charging networks and competitive pricing from new entrants.", "The Verge", "https://theverge.com/tech1", "https://images.unsplash.com/photo-1593941707882-a5bba14938c7?w=600"},
	},
	news.CategoryBusiness: {
		{"Wall Street Banks Report Strong Quarterly Earnings Despite Rate Uncertainty", "Major financial institutions beat earnings expectations, driven by robust trading revenue and growing wealth management divisions.", "CNBC", "https://cnbc.com/biz1", "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?w=600"},
		{"Retail Sector Adapts to Shifting Consumer Spending Patterns", "Major retailers are restructuring operations as consumers increasingly prioritize experiences and services over traditional goods.", "Forbes", "https://forbes.com/biz1", "https://images.unsplash.com/photo-1556761175-4b46a572b786?w=600"},
		{"Housing Market Shows Signs of Stabilization After Volatile Year", "Home prices have leveled off in major markets as mortgage rates plateau and inventory slowly increases, giving buyers more options.", "The Wall Street Journal", "https://wsj.com/biz1", "https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=600"},
		{"Supply Chain Innovation Drives Down Logistics Costs for Manufacturers", "Companies investing in AI-powered supply chain management are seeing significant cost reductions and improved delivery times.", "Bloomberg", "https://bloomberg.com/biz1", "https://images.unsplash.com/photo-1586528116311-ad8dd3c8310d?w=600"},
	},
	news.CategoryScience: {
		{"NASA Announces Discovery of Potentially Habitable Exoplanet", "The James Webb Space Telescope has identified an Earth-sized planet with atmospheric conditions that could support liquid water.", "Nature", "https://nature.com/sci1", "https://images.unsplash.com/photo-1462331940025-496dfbfc7564?w=600"},
		{"Breakthrough Gene Therapy Shows Promise for Rare Genetic Disorders", "Clinical trials demonstrate that a new CRISPR-based treatment can effectively correct genetic mutations responsible for several inherited conditions.", "Science Magazine", "https://science.org/sci1", "https://images.unsplash.com/photo-1532187863486-abf9dbad1b69?w=600"},
		{"Fusion Energy Milestone Brings Commercial Power Plants Closer to Reality", "Researchers achieved sustained fusion reactions lasting over 30 minutes, a critical step toward practical fusion energy production.", "MIT Technology Review", "https://technologyreview.com/sci1", "https://images.unsplash.com/photo-1635070041078-e363dbe005cb?w=600"},
	},
	news.CategoryHealth: {
		{"New Study Links Ultra-Processed Foods to Increased Health Risks", "Researchers found that diets high in ultra-processed foods are associated with higher rates of cardiovascular disease and certain cancers.", "The New York Times", "https://nytimes.com/health1", "https://images.unsplash.com/photo-1505576399279-565b52d4ac71?w=600"},
		{"Mental Health Crisis Among Young Adults Prompts Policy Responses", "Rising rates of anxiety and depression among 18-25 year olds have led to new federal funding for campus mental health services.", "NPR", "https://npr.org/health1", "https://images.unsplash.com/photo-1559757175-5700dde675bc?w=600"},
		{"Vaccine Development Platform Could Revolutionize Pandemic Preparedness", "A new mRNA platform technology enables rapid development of vaccines for emerging pathogens, potentially cutting development time in half.", "Reuters", "https://reuters.com/health1", "https://images.unsplash.com/photo-1584036561566-baf8f5f1b144?w=600"},
	},
	news.CategorySports: {
		{"NBA Playoffs Deliver Record-Breaking Television Ratings", "This year's playoff matchups have drawn the highest viewership in a decade, fueled by competitive series and emerging star players.", "ESPN", "https://espn.com/sports1", "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=600"},
		{"Olympic Committee Announces Host City for 2036 Summer Games", "The International Olympic Committee selected the host for the 2036 games, citing the city's existing infrastructure and sustainability plans.", "Sports Illustrated", "https://si.com/sports1", "https://images.unsplash.com/photo-1461896836934-bd45ba3c7921?w=600"},
		{"Formula 1 Revenue Hits All-Time High as US Fanbase Explodes", "The racing series reported record revenue driven by the continued expansion of its American audience and new race venues.", "The Athletic", "https://theathletic.com/sports1", "https://images.unsplash.com/photo-1541889413-2d78090a5fee?w=600"},
	},
	news.CategoryEntertainment: {
		{"Streaming Wars Intensify as Platforms Compete for Original Content", "Major streaming services are investing billions in exclusive content as subscriber growth slows and competition for viewer attention increases.", "Variety", "https://variety.com/ent1", "https://images.unsplash.com/photo-1522869635100-9f4c5e86aa37?w=600"},
		{"Box Office Surges with Summer Blockbuster Season", "Theater attendance has rebounded strongly with several franchise films exceeding pre-pandemic opening weekend records.", "Hollywood Reporter", "https://hollywoodreporter.com/ent1", "https://images.unsplash.com/photo-1536440136628-849c177e76a1?w=600"},
		{"Gaming Industry Embraces AI-Generated Content Despite Creator Concerns", "Game developers are increasingly using AI tools for content creation, sparking debate about artistic integrity and employment impacts.", "The Verge", "https://theverge.com/ent1", "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=600"},
	},
}

// sampleSet materializes the fixed stories for a category with publish
// times staggered backwards from now, newest first.
func sampleSet(category news.Category) []news.Article {
	stories, ok := sampleStories[category]
	if !ok {
		stories = sampleStories[news.CategoryGeneral]
	}

	now := time.Now()
	articles := make([]news.Article, 0, len(stories))
	for i, story := range stories {
		articles = append(articles, news.Article{
			Title:       story.title,
			Description: story.desc,
			URL:         story.url,
			ImageURL:    story.img,
			PublishedAt: now.Add(-time.Duration(i) * 45 * time.Minute),
			SourceName:  story.source,
		})
	}

	return articles
}
