package database

import "guidly_backend/internal/model"

// SeedMisconceptions is the curated, conservative starting catalog covering
// common secondary school subjects. The "general" topic is the catch-all the
// selector falls back to when an assignment's topic has no entries.
var SeedMisconceptions = []model.Misconception{
	// Mathematics - fractions
	{
		Topic:              "fractions",
		Category:           "Adding fractions",
		Description:        "Adding numerators and denominators separately instead of finding a common denominator",
		TeachingSuggestion: "Review the concept of equivalent fractions and why common denominators are needed for addition",
	},
	{
		Topic:              "fractions",
		Category:           "Comparing fractions",
		Description:        "Assuming larger denominators mean larger fractions",
		TeachingSuggestion: "Use visual models like fraction bars to compare fractions with different denominators",
	},
	{
		Topic:              "fractions",
		Category:           "Multiplying fractions",
		Description:        "Trying to find common denominators when multiplying fractions",
		TeachingSuggestion: "Demonstrate that multiplication of fractions is simply numerator times numerator over denominator times denominator",
	},

	// Mathematics - algebra
	{
		Topic:              "algebra",
		Category:           "Variable understanding",
		Description:        "Treating variables as labels rather than unknown quantities",
		TeachingSuggestion: "Use substitution exercises to reinforce that variables represent numbers",
	},
	{
		Topic:              "algebra",
		Category:           "Equation solving",
		Description:        "Performing operations on one side of the equation without balancing",
		TeachingSuggestion: "Use a balance scale analogy to visualize maintaining equality",
	},
	{
		Topic:              "algebra",
		Category:           "Order of operations",
		Description:        "Performing operations left to right without considering BIDMAS/PEMDAS",
		TeachingSuggestion: "Practice order of operations with clear step-by-step worked examples",
	},
	{
		Topic:              "algebra",
		Category:           "Negative numbers",
		Description:        "Confusing rules for adding and multiplying negative numbers",
		TeachingSuggestion: "Use number lines and real-world contexts like temperature or debt",
	},

	// Mathematics - percentages
	{
		Topic:              "percentages",
		Category:           "Percentage calculation",
		Description:        "Adding percentages directly without converting to the same base",
		TeachingSuggestion: "Emphasize that percentages must be of the same whole to be added",
	},
	{
		Topic:              "percentages",
		Category:           "Percentage increase/decrease",
		Description:        "Subtracting the percentage value from the original number instead of calculating the actual decrease",
		TeachingSuggestion: "Practice finding the percentage of a number first, then applying the change",
	},

	// Science - forces
	{
		Topic:              "forces",
		Category:           "Newton's laws",
		Description:        "Believing that constant motion requires constant force",
		TeachingSuggestion: "Demonstrate Newton's first law with friction-reduced examples",
	},
	{
		Topic:              "forces",
		Category:           "Action-reaction pairs",
		Description:        "Thinking action-reaction forces act on the same object",
		TeachingSuggestion: "Use clear diagrams showing forces on different objects in an interaction",
	},

	// Science - energy
	{
		Topic:              "energy",
		Category:           "Energy conservation",
		Description:        "Believing energy is used up rather than transferred",
		TeachingSuggestion: "Trace energy through a system showing all transformations",
	},
	{
		Topic:              "energy",
		Category:           "Heat and temperature",
		Description:        "Confusing heat (energy transfer) with temperature (measure of kinetic energy)",
		TeachingSuggestion: "Use examples of large cold objects vs small hot objects transferring heat",
	},

	// Science - electricity
	{
		Topic:              "electricity",
		Category:           "Current flow",
		Description:        "Thinking current is used up as it flows through a circuit",
		TeachingSuggestion: "Use the water pipe analogy to show current conservation",
	},
	{
		Topic:              "electricity",
		Category:           "Series vs parallel",
		Description:        "Confusing how current and voltage behave in series vs parallel circuits",
		TeachingSuggestion: "Build both circuit types and measure current/voltage at different points",
	},

	// English - grammar
	{
		Topic:              "grammar",
		Category:           "Subject-verb agreement",
		Description:        "Using singular verbs with plural subjects or vice versa",
		TeachingSuggestion: "Practice identifying the subject and matching verb form",
	},
	{
		Topic:              "grammar",
		Category:           "Tense consistency",
		Description:        "Shifting tenses within a paragraph without reason",
		TeachingSuggestion: "Review texts and identify/correct unnecessary tense shifts",
	},

	// Generic fallback
	{
		Topic:              model.TopicGeneral,
		Category:           "Procedural error",
		Description:        "Applied incorrect procedure or formula to solve the problem",
		TeachingSuggestion: "Review the correct procedure step by step",
	},
	{
		Topic:              model.TopicGeneral,
		Category:           "Conceptual misunderstanding",
		Description:        "Misunderstood the underlying concept being tested",
		TeachingSuggestion: "Revisit the foundational concept with examples",
	},
	{
		Topic:              model.TopicGeneral,
		Category:           "Calculation error",
		Description:        "Made an arithmetic or computational mistake",
		TeachingSuggestion: "Encourage checking work and using estimation to verify answers",
	},
}
