package content

import "github.com/dmitrijs2005/neoportfolio/internal/models"

// Seed content served until something has been saved, and whenever a read
// fails. The functions return fresh slices on every call.

func SeedProjects() []models.Project {
	return []models.Project{
		{
			ID:          1,
			Title:       "Retro Terminal",
			Description: "A fully functional web-based terminal emulator built with React and custom command parsing logic.",
			Tags:        []string{"React", "TypeScript", "CSS"},
			Link:        "#",
			Color:       "bg-neo-secondary",
			Image:       "https://picsum.photos/800/600?random=1",
		},
		{
			ID:          2,
			Title:       "Crypto Dashboard",
			Description: "Real-time cryptocurrency tracking dashboard featuring brutalist charts and live websocket data.",
			Tags:        []string{"Next.js", "Recharts", "API"},
			Link:        "#",
			Color:       "bg-neo-accent",
			Image:       "https://picsum.photos/800/600?random=2",
		},
		{
			ID:          3,
			Title:       "Glitch Art Gen",
			Description: "An HTML5 canvas experiment that generates random glitch art based on user uploaded images.",
			Tags:        []string{"Canvas API", "Algorithms", "Art"},
			Link:        "#",
			Color:       "bg-neo-pink",
			Image:       "https://picsum.photos/800/600?random=3",
		},
		{
			ID:          4,
			Title:       "SaaS Landing V1",
			Description: "High conversion landing page with scroll-triggered animations and 3D elements.",
			Tags:        []string{"Tailwind", "Framer Motion"},
			Link:        "#",
			Color:       "bg-yellow-400",
			Image:       "https://picsum.photos/800/600?random=4",
		},
	}
}

func SeedPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID:       1,
			Title:    "Why Neobrutalism is the Future of UI",
			Date:     "OCT 24, 2023",
			Excerpt:  "Minimalism is dead. Long live the raw, unfiltered expression of the web. Here is why hard shadows and bold borders are taking over.",
			Content:  ptr(`## The Death of Flat Design
Minimalism has served us well for the last decade. Lots of whitespace, subtle shadows, and rounded corners safe, clean, and corporate. But the web was never meant to be just a sterile corridor of SaaS landing pages. It was meant to be a canvas for expression.

Neobrutalism isn't just an aesthetic choice; it's a reaction against the homogenization of web design. By using high contrast, clashing colors, and raw layout structures, we force the user to pay attention. We stop hiding the computer behind layers of metaphor and instead celebrate the digital nature of the medium.

## Key Characteristics
- **Typography**: Default system fonts or bold, idiosyncratic typography.
- **Borders**: Pure black (#000000) borders and shadows.
- **Color**: High saturation colors that vibrate against each other.
- **Layout**: A disregard for traditional spacing rules in favor of density and impact.

## Conclusion
Is it for everyone? No. But that's the point. Good design should have an opinion.`),
			ReadTime: "5 MIN READ",
			Tags:     []string{"DESIGN", "OPINION"},
		},
		{
			ID:       2,
			Title:    "Mastering React Hooks in 2024",
			Date:     "NOV 02, 2023",
			Excerpt:  "Deep dive into useEffect nuances, custom hooks patterns, and performance optimization techniques that you might be missing.",
			Content:  ptr(`React Hooks have fundamentally changed how we write components, but many developers are still stuck in class-component patterns or are misusing dependency arrays.

## The useEffect Trap
One of the biggest pitfalls is the ` + "`" + `useEffect` + "`" + ` hook. It's not a lifecycle method. It's a synchronization engine. If you're trying to mirror ` + "`" + `componentDidMount` + "`" + `, you're thinking about it wrong. You should be thinking: "how do I keep this external system in sync with my state?"

## Custom Hooks
Let's talk about Custom Hooks. They are the secret weapon of clean React architecture. If you find yourself writing the same ` + "`" + `useEffect` + "`" + ` logic in two different components, extract it. 

- **useWindowSize**: For responsive logic
- **useLocalStorage**: For persistence
- **useFetch**: For data fetching

These aren't just utilities; they are domain logic encapsulations.`),
			ReadTime: "12 MIN READ",
			Tags:     []string{"CODE", "REACT"},
		},
		{
			ID:       3,
			Title:    "The State of CSS: Tailwind vs. The World",
			Date:     "DEC 15, 2023",
			Excerpt:  "Utility-first CSS has won the war. But what comes next? Analyzing the trend of style-less component libraries.",
			Content:  ptr(`I used to hate Tailwind. "Why would I clutter my HTML with classes?" I asked. "Separation of concerns!" I shouted.

I was wrong. The concern isn't the file extension; it's the component. Co-locating styles with structure reduces context switching and makes refactoring trivial.

## Headless UI
But now we are seeing a new shift: Headless UI libraries. Radix UI, React Aria, and Headless UI provide the logic and accessibility (ARIA attributes, keyboard nav) without the styles. You bring your own Tailwind. This is the holy grail: fully accessible, complex components that look exactly how you want them to look, without fighting a framework's default styles.`),
			ReadTime: "8 MIN READ",
			Tags:     []string{"CSS", "TECH"},
		},
		{
			ID:       4,
			Title:    "Breaking the Grid",
			Date:     "JAN 10, 2024",
			Excerpt:  "How to create asymmetric layouts that don't break responsive behavior. A guide to creative coding.",
			Content:  ptr(`The 12-column grid is a safety net. It guarantees that things align, but it also guarantees that things look predictable. To stand out, sometimes you have to break the grid.

## Techniques for Chaos
1. **CSS Grid with overlapping areas**: You can place items in the same grid cell or span them across tracks that overlap. Use z-index to manage the stacking order.
2. **Translate Transforms**: Use ` + "`" + `transform: translate(x, y)` + "`" + ` to nudge elements off their natural axis. This is performant and doesn't affect the document flow of surrounding elements.
3. **Negative Margins**: The old school way. Dangerous, but effective for pulling elements out of their containers.

The trick to responsive asymmetry is to revert to a standard stack on mobile. Chaos works on desktop where you have space; on mobile, clarity is king.`),
			ReadTime: "6 MIN READ",
			Tags:     []string{"LAYOUT", "DESIGN"},
		},
	}
}

func ptr(s string) *string { return &s }
