package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
)

// ChallengeSeeder handles seeding the coding challenge catalog
type ChallengeSeeder struct {
	db *gorm.DB
}

func NewChallengeSeeder(db *gorm.DB) *ChallengeSeeder {
	return &ChallengeSeeder{db: db}
}

// SeedChallenges seeds the database with the starter challenge catalog
func (s *ChallengeSeeder) SeedChallenges() error {
	if err := s.db.AutoMigrate(&model.CodingChallenge{}); err != nil {
		return err
	}

	challenges := s.getChallengeCatalog()

	for _, challenge := range challenges {
		var existing model.CodingChallenge
		if err := s.db.Where("slug = ?", challenge.Slug).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&challenge).Error; err != nil {
					log.Printf("Error creating challenge %s: %v", challenge.Slug, err)
					return err
				}
				log.Printf("Created challenge: %s", challenge.Title)
			} else {
				log.Printf("Error checking challenge %s: %v", challenge.Slug, err)
				return err
			}
		} else {
			log.Printf("Challenge %s already exists, skipping", challenge.Slug)
		}
	}

	log.Println("Challenge seeding completed successfully")
	return nil
}

func (s *ChallengeSeeder) getChallengeCatalog() []model.CodingChallenge {
	now := time.Now()

	entries := []model.CodingChallenge{
		{
			ID:          "chal_two_sum",
			Slug:        "two-sum",
			Title:       "Two Sum",
			Difficulty:  "easy",
			Category:    "arrays",
			Description: "Given an array of integers and a target, return the indices of the two numbers that add up to the target.",
		},
		{
			ID:          "chal_valid_parentheses",
			Slug:        "valid-parentheses",
			Title:       "Valid Parentheses",
			Difficulty:  "easy",
			Category:    "stacks",
			Description: "Determine whether a string of brackets is balanced and properly nested.",
		},
		{
			ID:          "chal_merge_sorted_lists",
			Slug:        "merge-two-sorted-lists",
			Title:       "Merge Two Sorted Lists",
			Difficulty:  "easy",
			Category:    "linked-lists",
			Description: "Merge two sorted linked lists into a single sorted list.",
		},
		{
			ID:          "chal_best_time_stock",
			Slug:        "best-time-to-buy-and-sell-stock",
			Title:       "Best Time to Buy and Sell Stock",
			Difficulty:  "easy",
			Category:    "arrays",
			Description: "Find the maximum profit from a single buy and sell given daily prices.",
		},
		{
			ID:          "chal_reverse_linked_list",
			Slug:        "reverse-linked-list",
			Title:       "Reverse Linked List",
			Difficulty:  "easy",
			Category:    "linked-lists",
			Description: "Reverse a singly linked list iteratively or recursively.",
		},
		{
			ID:          "chal_binary_search",
			Slug:        "binary-search",
			Title:       "Binary Search",
			Difficulty:  "easy",
			Category:    "searching",
			Description: "Search a sorted array for a target value in logarithmic time.",
		},
		{
			ID:          "chal_longest_substring",
			Slug:        "longest-substring-without-repeating-characters",
			Title:       "Longest Substring Without Repeating Characters",
			Difficulty:  "medium",
			Category:    "strings",
			Description: "Find the length of the longest substring without repeating characters.",
		},
		{
			ID:          "chal_three_sum",
			Slug:        "three-sum",
			Title:       "3Sum",
			Difficulty:  "medium",
			Category:    "arrays",
			Description: "Find all unique triplets in an array that sum to zero.",
		},
		{
			ID:          "chal_group_anagrams",
			Slug:        "group-anagrams",
			Title:       "Group Anagrams",
			Difficulty:  "medium",
			Category:    "strings",
			Description: "Group a list of strings into sets of anagrams.",
		},
		{
			ID:          "chal_course_schedule",
			Slug:        "course-schedule",
			Title:       "Course Schedule",
			Difficulty:  "medium",
			Category:    "graphs",
			Description: "Determine whether all courses can be finished given prerequisite pairs.",
		},
		{
			ID:          "chal_number_of_islands",
			Slug:        "number-of-islands",
			Title:       "Number of Islands",
			Difficulty:  "medium",
			Category:    "graphs",
			Description: "Count the number of islands in a 2D grid of land and water cells.",
		},
		{
			ID:          "chal_coin_change",
			Slug:        "coin-change",
			Title:       "Coin Change",
			Difficulty:  "medium",
			Category:    "dp",
			Description: "Compute the fewest coins needed to make up a given amount.",
		},
		{
			ID:          "chal_lru_cache",
			Slug:        "lru-cache",
			Title:       "LRU Cache",
			Difficulty:  "medium",
			Category:    "design",
			Description: "Design a least-recently-used cache with O(1) get and put.",
		},
		{
			ID:          "chal_word_break",
			Slug:        "word-break",
			Title:       "Word Break",
			Difficulty:  "medium",
			Category:    "dp",
			Description: "Decide whether a string can be segmented into dictionary words.",
		},
		{
			ID:          "chal_merge_intervals",
			Slug:        "merge-intervals",
			Title:       "Merge Intervals",
			Difficulty:  "medium",
			Category:    "arrays",
			Description: "Merge all overlapping intervals in a collection.",
		},
		{
			ID:          "chal_trapping_rain_water",
			Slug:        "trapping-rain-water",
			Title:       "Trapping Rain Water",
			Difficulty:  "hard",
			Category:    "arrays",
			Description: "Compute how much water an elevation map can trap after raining.",
		},
		{
			ID:          "chal_median_sorted_arrays",
			Slug:        "median-of-two-sorted-arrays",
			Title:       "Median of Two Sorted Arrays",
			Difficulty:  "hard",
			Category:    "searching",
			Description: "Find the median of two sorted arrays in logarithmic time.",
		},
		{
			ID:          "chal_word_ladder",
			Slug:        "word-ladder",
			Title:       "Word Ladder",
			Difficulty:  "hard",
			Category:    "graphs",
			Description: "Find the shortest transformation sequence between two words.",
		},
		{
			ID:          "chal_serialize_btree",
			Slug:        "serialize-and-deserialize-binary-tree",
			Title:       "Serialize and Deserialize Binary Tree",
			Difficulty:  "hard",
			Category:    "trees",
			Description: "Design an algorithm to serialize a binary tree to a string and back.",
		},
		{
			ID:          "chal_edit_distance",
			Slug:        "edit-distance",
			Title:       "Edit Distance",
			Difficulty:  "hard",
			Category:    "dp",
			Description: "Compute the minimum number of operations to convert one word into another.",
		},
	}

	for i := range entries {
		entries[i].IsActive = true
		entries[i].CreatedAt = now
		entries[i].UpdatedAt = now
	}

	return entries
}
