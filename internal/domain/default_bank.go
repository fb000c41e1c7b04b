package domain

// DefaultBankID names the built-in general knowledge bank.
const DefaultBankID = "general-knowledge"

// DefaultBank returns a fresh copy of the built-in seven-question bank.
func DefaultBank() Bank {
	return Bank{
		ID: DefaultBankID,
		Questions: []Question{
			{
				Prompt:    "Which planet is known as the 'Red Planet'?",
				Options:   []string{"Venus", "Mars", "Jupiter", "Saturn"},
				Correct:   1,
				Hint:      "This planet appears reddish due to iron oxide (rust) on its surface.",
				TimeLimit: 30,
			},
			{
				Prompt:    "What is the largest mammal in the world?",
				Options:   []string{"African Elephant", "Blue Whale", "Giraffe", "Polar Bear"},
				Correct:   1,
				Hint:      "This marine mammal can grow up to 100 feet long and lives in the ocean.",
				TimeLimit: 25,
			},
			{
				Prompt:    "In which year did World War II end?",
				Options:   []string{"1944", "1945", "1946", "1947"},
				Correct:   1,
				Hint:      "This was the same year the atomic bombs were dropped on Japan.",
				TimeLimit: 30,
			},
			{
				Prompt:    "What is the chemical symbol for gold?",
				Options:   []string{"Go", "Gd", "Au", "Ag"},
				Correct:   2,
				Hint:      "This symbol comes from the Latin word 'aurum' meaning gold.",
				TimeLimit: 25,
			},
			{
				Prompt:    "Which programming language is known as the 'mother of all languages'?",
				Options:   []string{"Python", "Java", "C", "Assembly"},
				Correct:   2,
				Hint:      "This language was developed at Bell Labs and influenced many modern languages.",
				TimeLimit: 35,
			},
			{
				Prompt:    "What is the speed of light in a vacuum?",
				Options:   []string{"299,792,458 m/s", "300,000,000 m/s", "186,000 miles/s", "Both A and C are correct"},
				Correct:   3,
				Hint:      "This is one of the fundamental constants in physics, often denoted as 'c'.",
				TimeLimit: 40,
			},
			{
				Prompt:    "Which artist painted the Mona Lisa?",
				Options:   []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"},
				Correct:   2,
				Hint:      "This Italian Renaissance artist was also an inventor and scientist.",
				TimeLimit: 25,
			},
		},
	}
}
