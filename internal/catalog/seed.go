package catalog

// Seed catalogs shipped with the service: one Academic Reading test and one
// Listening test. Additional catalogs are loaded through ImportXLSX.

// SeedCatalogs returns the built-in test definitions.
func SeedCatalogs() []*Catalog {
	return []*Catalog{mustSeed(seedReading()), mustSeed(seedListening())}
}

func mustSeed(c *Catalog, err error) *Catalog {
	if err != nil {
		panic("invalid seed catalog: " + err.Error())
	}
	return c
}

func seedReading() (*Catalog, error) {
	passages := []Passage{
		{
			ID:    1,
			Title: "The World's First Cities",
			Content: `The inhabitants of Mesopotamia lived for thousands of years on individual farms or in small, isolated communities, working relentlessly just to meet their basic needs. Then, about 6,000 years ago, something remarkable happened: people left the security of their family homes and villages and came together to create something far more complex — the world's first city, called Uruk. Today, there is not much left of Uruk, which is about 250 kilometres south of Baghdad, but enough remains to show that this first experiment in urban living was extraordinarily successful. At its height, around 5,000 years ago, Uruk was home to more than 40,000 people, and the outlines of the city walls indicate an enclosed area of about 600 hectares.

The archaeological record of Uruk reveals intensive building and rebuilding over four or five centuries after the city's establishment. The people built a dozen or so large public buildings, carefully levelling the previous structures and often experimenting with different materials or innovative techniques. By about 4,500 years ago, 80 per cent of the population lived in cities over 40 hectares in size, with populations between 15,000 and 30,000.

Smaller communities in Mesopotamia sometimes united to make it easier to defend themselves from enemies, but the main reason for creating cities lay in the harshness of the environment. The limited rainfall could only support very restricted agriculture, so sophisticated irrigation was essential to keep small patches of land fertile. The Tigris and Euphrates rivers provided water for irrigation and acted as communication channels that spread new farming concepts.

The threat of famine forced people to work beyond their families, creating elaborate systems of dams, channels and canals to manage water. The intensive farming that developed in Mesopotamia was more efficient and productive, generating a surplus of food. This created a need for traders and skilled craftsmen, marking the beginnings of industry and consumerism.

The earliest and most powerful institutions were centred on temples. Ever larger temples were built in the form of massive pyramids, with enormous storerooms for produce from farming estates. Over time, the temples acquired farms, appointed large numbers of staff to manage them, and stored produce, enabling them to act as a primitive bank, lending to those in need.

We know much about this period thanks to the development of writing. In Mesopotamia, records were inscribed in wet clay. Clay tablets were tough, and fires that destroyed archives usually baked them for preservation.`,
		},
		{
			ID:    2,
			Title: "Australia's Camouflaged Creatures",
			Content: `Many species of animal in Australia protect themselves by blending into their surroundings. Over generations of natural selection, animals develop astonishingly complex camouflage by manipulating shape, colour and movement. The principle is to make it uneconomical for a predator to pursue a certain prey: camouflage increases the predator's search time, so it either fails to see the camouflaged prey or finds something else to hunt.

Stick and leaf insects have evolved to look like sticks, dry leaves or living foliage. The desert insects of Central Australia are the most convincingly disguised, as the ancient habitat has given them a long time to adapt. A tawny frogmouth sitting motionless on a stump shows the importance of matching appearance with behaviour; the ability to choose the right backdrop develops only after four to six months, and until then the parents try to signal the young to move to safer locations.

Some animals, such as the cuttlefish, have evolved adaptable camouflage, instantly changing colour, pattern and texture to match surroundings. On Queensland's reefs, the bluestriped fangblenny changes colour to mimic other fish. Its most remarkable impersonation is of the cleaner wrasse, which eats parasites off larger fish. This lets the fangblenny enjoy protection and get close to prey.

The most famous form of mimicry is Batesian mimicry, where harmless animals imitate dangerous ones. In Queensland's tablelands, the chameleon gecko drops its banded tail when attacked; the tail wriggles and squeaks due to bones rubbing together, and the predator focuses on the tail while the gecko escapes.`,
		},
		{
			ID:    3,
			Title: "The Effectiveness of an Online Course",
			Content: `As internet access has grown, so has web-based learning. About 2 million US students take post-secondary courses fully online. Yet the effectiveness of online courses for individual needs and outcomes is questioned.

In classrooms, social and communicative interactions between students and teachers are fundamental. Online, successful interaction requires adjustment; web-based learning is non-linear, with multiple threads active at once. Sproull and Kiesler warn that misinformation can persist online because instructors cannot correct it immediately, which requires students to evaluate sources carefully.

The concept of "presence" — a sense of belonging to a group — is different online. In classrooms, presence is assumed from physical attendance; online, presence refers to belonging without physical contact. Anthony Picciano studied student attitudes toward interaction, presence, and course objectives, finding that while perceived interaction correlates with perceived learning, the link between actual interaction and performance is mixed.`,
		},
	}

	questions := []Question{
		{ID: 1, Type: TrueFalseNotGiven, Prompt: "Some physical evidence of Uruk still exists in Iraq.", CorrectAnswer: "TRUE", GroupID: 1},
		{ID: 2, Type: TrueFalseNotGiven, Prompt: "The people of Uruk lived in large apartment buildings.", CorrectAnswer: "NOT GIVEN", GroupID: 1},
		{ID: 3, Type: TrueFalseNotGiven, Prompt: "Builders in Uruk frequently experimented with new construction methods.", CorrectAnswer: "TRUE", GroupID: 1},
		{ID: 4, Type: TrueFalseNotGiven, Prompt: "Urban settlements were unusual in Mesopotamia 4,500 years ago.", CorrectAnswer: "FALSE", GroupID: 1},
		{ID: 5, Type: TrueFalseNotGiven, Prompt: "The Tigris and the Euphrates rivers were important for the interchange of ideas.", CorrectAnswer: "TRUE", GroupID: 1},
		{ID: 6, Type: TrueFalseNotGiven, Prompt: "When there were food shortages, farmers relied mainly on the help of their relatives.", CorrectAnswer: "FALSE", GroupID: 1},
		{ID: 7, Type: FillInBlank, Prompt: "The intensive farming that developed in Mesopotamia generated a _______ of food.", CorrectAnswer: "surplus", GroupID: 1},
		{ID: 8, Type: FillInBlank, Prompt: "Temples were built in the shape of large _______.", CorrectAnswer: "pyramids", GroupID: 1},
		{ID: 9, Type: FillInBlank, Prompt: "They had large _______ where produce was kept.", CorrectAnswer: "storerooms", GroupID: 1},
		{ID: 10, Type: FillInBlank, Prompt: "Many _______ were needed to manage the farms.", CorrectAnswer: "staff", GroupID: 1},
		{ID: 11, Type: FillInBlank, Prompt: "They acted as _______ in hard economic periods.", CorrectAnswer: "banks", GroupID: 1},
		{ID: 12, Type: FillInBlank, Prompt: "People wrote on surfaces made of _______.", CorrectAnswer: "clay", GroupID: 1},
		{ID: 13, Type: FillInBlank, Prompt: "Written records remained undamaged after _______ in archives.", CorrectAnswer: "fires", GroupID: 1},

		{ID: 14, Type: Matching, Prompt: "A species that signals its young to move somewhere safer.", Options: matchingLetters(), CorrectAnswer: "C", GroupID: 2},
		{ID: 15, Type: Matching, Prompt: "An instance where sound helps an animal escape.", Options: matchingLetters(), CorrectAnswer: "G", GroupID: 2},
		{ID: 16, Type: Matching, Prompt: "A creature that can adapt its camouflage to match many backgrounds.", Options: matchingLetters(), CorrectAnswer: "D", GroupID: 2},
		{ID: 17, Type: Matching, Prompt: "A claim that most animals disguise themselves.", Options: matchingLetters(), CorrectAnswer: "A", GroupID: 2},
		{ID: 18, Type: Matching, Prompt: "Examples of animals that look like plants.", Options: matchingLetters(), CorrectAnswer: "B", GroupID: 2},
		{ID: 19, Type: Matching, Prompt: "One species has camouflage not present from birth.", Options: matchingLetters(), CorrectAnswer: "C", GroupID: 2},
		{ID: 20, Type: Matching, Prompt: "Species in ancient environments have become highly effective at camouflage.", Options: matchingLetters(), CorrectAnswer: "B", GroupID: 2},
		{ID: 21, Type: Matching, Prompt: "Part of an animal is left behind to distract predators.", Options: matchingLetters(), CorrectAnswer: "G", GroupID: 2},
		{ID: 22, Type: Matching, Prompt: "If finding one prey type takes too long, predators switch.", Options: matchingLetters(), CorrectAnswer: "A", GroupID: 2},
		{ID: 23, Type: Matching, Prompt: "Camouflage can involve copying a threatening animal.", Options: matchingLetters(), CorrectAnswer: "E", GroupID: 2},
		{ID: 24, Type: FillInBlank, Prompt: "The bluestriped fangblenny lives on _______ off Queensland's coast.", CorrectAnswer: "reefs", GroupID: 2},
		{ID: 25, Type: FillInBlank, Prompt: "It imitates the cleaner wrasse, which removes _______ from other fish.", CorrectAnswer: "parasites", GroupID: 2},
		{ID: 26, Type: FillInBlank, Prompt: "This allows it to approach its _______ unnoticed.", CorrectAnswer: "prey", GroupID: 2},

		{ID: 27, Type: MultipleChoice, Prompt: "Classroom-based learning involves:", Options: []string{"A. Individual study", "B. Online forums", "C. Video lectures", "D. Exchange of ideas"}, CorrectAnswer: "D", GroupID: 3},
		{ID: 28, Type: MultipleChoice, Prompt: "Online learning requires:", Options: []string{"A. Single focus", "B. Linear progression", "C. Face-to-face contact", "D. Following multiple discussions"}, CorrectAnswer: "D", GroupID: 3},
		{ID: 29, Type: MultipleChoice, Prompt: "Sproull & Kiesler warn that:", Options: []string{"A. Students are lazy", "B. Technology fails", "C. Information overload occurs", "D. Feedback to students can be delayed"}, CorrectAnswer: "D", GroupID: 3},
		{ID: 30, Type: MultipleChoice, Prompt: "Online presence means:", Options: []string{"A. Physical attendance", "B. Feeling part of a group", "C. Video calls", "D. Chat participation"}, CorrectAnswer: "B", GroupID: 3},
		{ID: 31, Type: MultipleChoice, Prompt: "Picciano's study:", Options: []string{"A. Examined relationship between presence and course outcomes", "B. Proved online learning is better", "C. Focused on technology", "D. Studied only face-to-face classes"}, CorrectAnswer: "A", GroupID: 3},
		{ID: 32, Type: TrueFalseNotGiven, Prompt: "Ability to meet individual needs is unclear.", CorrectAnswer: "YES", GroupID: 3},
		{ID: 33, Type: TrueFalseNotGiven, Prompt: "Researchers warn against strong online relationships.", CorrectAnswer: "NOT GIVEN", GroupID: 3},
		{ID: 34, Type: TrueFalseNotGiven, Prompt: "Assumptions about face-to-face benefits have proved correct.", CorrectAnswer: "NO", GroupID: 3},
		{ID: 35, Type: TrueFalseNotGiven, Prompt: "Meaning of presence is still evolving.", CorrectAnswer: "YES", GroupID: 3},
		{ID: 36, Type: TrueFalseNotGiven, Prompt: "Research on interaction impacts has been consistent.", CorrectAnswer: "NO", GroupID: 3},
		{ID: 37, Type: Matching, Prompt: "The ability to succeed in an online course", Options: matchingLetters(), CorrectAnswer: "A", GroupID: 3},
		{ID: 38, Type: Matching, Prompt: "Need to be mindful of comment sources", Options: matchingLetters(), CorrectAnswer: "D", GroupID: 3},
		{ID: 39, Type: Matching, Prompt: "In online courses, presence", Options: matchingLetters(), CorrectAnswer: "C", GroupID: 3},
		{ID: 40, Type: Matching, Prompt: "The link between interaction and achievement", Options: matchingLetters(), CorrectAnswer: "B", GroupID: 3},
	}

	return New("reading-academic-1", "Academic Reading Practice Test 1", KindReading, 60*60, passages, questions, nil, DefaultReadingBands())
}

func seedListening() (*Catalog, error) {
	passages := []Passage{
		{ID: 1, Title: "Phone call about second-hand furniture", Content: "Listen and answer questions 1-10."},
		{ID: 2, Title: "Holiday centre map", Content: "Label the map. Drag the correct room name into each numbered gap."},
		{ID: 3, Title: "Theme park visit", Content: "Complete the table and the summary. Drag the correct attraction into each gap."},
	}

	questions := []Question{
		{ID: 1, Type: FillInBlank, Prompt: "Dining table: _______ shape", CorrectAnswer: "round", GroupID: 1},
		{ID: 2, Type: FillInBlank, Prompt: "Dining table: _______ years old", CorrectAnswer: "2", GroupID: 1},
		{ID: 3, Type: FillInBlank, Prompt: "Dining chairs: set of _______ chairs", CorrectAnswer: "3", GroupID: 1},
		{ID: 4, Type: FillInBlank, Prompt: "Dining chairs: seats covered in _______ material", CorrectAnswer: "4", GroupID: 1},
		{ID: 5, Type: FillInBlank, Prompt: "Desk: length of _______", CorrectAnswer: "5", GroupID: 1},
		{ID: 6, Type: FillInBlank, Prompt: "Desk: has a _______ drawer with a lock", CorrectAnswer: "6", GroupID: 1},
		{ID: 7, Type: FillInBlank, Prompt: "Address: 41 _______ Street", CorrectAnswer: "7", GroupID: 1},
		{ID: 8, Type: FillInBlank, Prompt: "Directions: house next to the _______", CorrectAnswer: "8", GroupID: 1},
		{ID: 9, Type: FillInBlank, Prompt: "Contact name: _______", CorrectAnswer: "9", GroupID: 1},
		{ID: 10, Type: FillInBlank, Prompt: "Best time to come: after _______ pm", CorrectAnswer: "10", GroupID: 1},

		{ID: 16, Type: Drag, Prompt: "Map label 16", CorrectAnswer: "Cookery Room", GroupID: 2},
		{ID: 17, Type: Drag, Prompt: "Map label 17", CorrectAnswer: "Games Room", GroupID: 2},
		{ID: 18, Type: Drag, Prompt: "Map label 18", CorrectAnswer: "Kitchen", GroupID: 2},
		{ID: 19, Type: Drag, Prompt: "Map label 19", CorrectAnswer: "Pottery Room", GroupID: 2},
		{ID: 20, Type: Drag, Prompt: "Map label 20", CorrectAnswer: "Sports Complex", GroupID: 2},

		{ID: 21, Type: Matching, Prompt: "Feature of the roller coaster", Options: matchingLetters(), CorrectAnswer: "C", GroupID: 3},
		{ID: 22, Type: Matching, Prompt: "Feature of the ferris wheel", Options: matchingLetters(), CorrectAnswer: "A", GroupID: 3},
		{ID: 23, Type: Matching, Prompt: "Feature of the haunted house", Options: matchingLetters(), CorrectAnswer: "H", GroupID: 3},
		{ID: 24, Type: Matching, Prompt: "Feature of the carousel", Options: matchingLetters(), CorrectAnswer: "F", GroupID: 3},

		{ID: 25, Type: Drag, Prompt: "First stop of the visit", CorrectAnswer: "Funnel Cake Factory", GroupID: 3},
		{ID: 26, Type: Drag, Prompt: "Second stop of the visit", CorrectAnswer: "Buggy Ride", GroupID: 3},
		{ID: 27, Type: Drag, Prompt: "Third stop of the visit", CorrectAnswer: "Balloon Ride", GroupID: 3},
		{ID: 28, Type: Drag, Prompt: "Final stop of the visit", CorrectAnswer: "Water Park", GroupID: 3},
	}

	tokens := []TokenDef{
		{ID: "t1", Value: "Cookery Room"},
		{ID: "t2", Value: "Games Room"},
		{ID: "t3", Value: "Kitchen"},
		{ID: "t4", Value: "Pottery Room"},
		{ID: "t5", Value: "Sports Complex"},
		{ID: "t6", Value: "Staff Accommodation"},
		{ID: "t7", Value: "Funnel Cake Factory"},
		{ID: "t8", Value: "Buggy Ride"},
		{ID: "t9", Value: "Balloon Ride"},
		{ID: "t10", Value: "Water Park"},
	}

	return New("listening-1", "Listening Practice Test 1", KindListening, 58*60, passages, questions, tokens, DefaultListeningBands())
}

func matchingLetters() []string {
	return []string{"A", "B", "C", "D", "E", "F", "G", "H"}
}
