package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"
	"strings"

	"trip-planner-service/internal/adapters/datafile"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/routegraph"
	"trip-planner-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	poiFile      string
	distanceFile string
	profileFile  string
	season       string
	weightsFlag  string
	seedFlag     uint64
	showScore    bool
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Plan multi-day trips from local dataset files",
	Long: `planctl runs the trip planner against local JSON datasets, without a
server or database. Use "plan" for a full start-to-end itinerary and
"suggest" to pick a day's worth of activities per city.`,
	SilenceUsage: true,
}

var planCmd = &cobra.Command{
	Use:   "plan FROM TO DAYS",
	Short: "Plan a full itinerary from FROM to TO over DAYS days",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		days, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("DAYS must be a number, got %q", args[2])
		}

		normalizedSeason, err := env.catalog.NormalizeSeason(season)
		if err != nil {
			return err
		}
		weights, err := parseWeights(weightsFlag, env.vocab)
		if err != nil {
			return err
		}

		rng := newRand(cmd)
		itinerary, err := env.planner.PlanRoute(args[0], args[1], days, weights, normalizedSeason, rng)
		if err != nil {
			return err
		}

		printItinerary(itinerary, env.vocab)

		if showScore {
			score, err := env.planner.Evaluate(itinerary, args[0], args[1], weights, services.MaxDailyTimeUnits, normalizedSeason)
			if err != nil {
				return err
			}
			printScore(score)
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest CITY...",
	Short: "Suggest a day's worth of activities for each listed city",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		normalizedSeason, err := env.catalog.NormalizeSeason(season)
		if err != nil {
			return err
		}
		weights, err := parseWeights(weightsFlag, env.vocab)
		if err != nil {
			return err
		}

		rng := newRand(cmd)
		for _, city := range args {
			pool := env.catalog.POIsForCity(city, normalizedSeason)

			separator := strings.Repeat("=", 60)
			fmt.Println(separator)
			fmt.Printf("City: %s\n", city)
			fmt.Println(separator)

			if len(pool) == 0 {
				fmt.Println("  (No matching POIs found)")
				fmt.Println()
				continue
			}

			pois, err := env.selector.SelectForDay(pool, weights, 0, normalizedSeason, rng)
			if err != nil {
				return err
			}
			printPOIs(pois, env.vocab)
		}
		return nil
	},
}

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the cities a plan may start or end in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		for _, city := range env.planner.AvailableCities() {
			fmt.Println(city)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&poiFile, "poi-file", "data/seeds/pois.json", "path to the POI dataset")
	rootCmd.PersistentFlags().StringVar(&distanceFile, "distance-file", "data/seeds/distances.json", "path to the distance dataset")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", "", "path to a planner profile (defaults to the bundled dataset profile)")
	rootCmd.PersistentFlags().StringVar(&season, "season", "summer", "travel season")
	rootCmd.PersistentFlags().StringVar(&weightsFlag, "weights", "", "comma-separated category weights in vocabulary order (default: uniform)")
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "random seed for reproducible runs")

	planCmd.Flags().BoolVar(&showScore, "score", false, "evaluate and print the itinerary score")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(citiesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type environment struct {
	vocab    domain.Vocabulary
	catalog  *catalog.Catalog
	graph    *routegraph.Graph
	selector *services.Selector
	planner  *services.Planner
}

func loadEnvironment() (*environment, error) {
	profile := config.DefaultProfile()
	if profileFile != "" {
		var err error
		profile, err = config.LoadProfile(profileFile)
		if err != nil {
			return nil, err
		}
	}
	vocab := domain.Vocabulary(profile.Categories)

	pois, err := datafile.LoadPOIRecords(poiFile, vocab)
	if err != nil {
		return nil, err
	}
	distances, err := datafile.LoadDistanceMatrix(distanceFile)
	if err != nil {
		return nil, err
	}

	cat, graph, err := services.LoadCatalog(pois, distances, vocab)
	if err != nil {
		return nil, err
	}

	distanceToPOI := make(map[string]string, len(profile.CityIdentities))
	for _, identity := range profile.CityIdentities {
		distanceToPOI[identity.DistanceName] = identity.POIName
	}
	mapping := services.CityMapping{
		CountrySuffix: profile.CountrySuffix,
		DistanceToPOI: distanceToPOI,
		ExtraAliases:  profile.ExtraAliases,
	}

	selector := services.NewSelector(vocab, services.NewNameSimilarity(profile.SimilarityStopwords, profile.LandmarkTokens))
	return &environment{
		vocab:    vocab,
		catalog:  cat,
		graph:    graph,
		selector: selector,
		planner:  services.NewPlanner(cat, graph, selector, mapping),
	}, nil
}

// parseWeights reads comma-separated weights in vocabulary order and
// normalizes them to sum to one. An empty flag means uniform weights.
func parseWeights(raw string, vocab domain.Vocabulary) (map[string]float64, error) {
	weights := make(map[string]float64, len(vocab))
	if strings.TrimSpace(raw) == "" {
		uniform := 1.0 / float64(len(vocab))
		for _, category := range vocab {
			weights[category] = uniform
		}
		return weights, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != len(vocab) {
		return nil, fmt.Errorf("expected %d weights (%s), got %d", len(vocab), strings.Join(vocab, ", "), len(parts))
	}

	total := 0.0
	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q is not a number", part)
		}
		if v < 0 {
			return nil, fmt.Errorf("weight %q must not be negative", part)
		}
		values[i] = v
		total += v
	}
	if total <= 0 {
		return nil, fmt.Errorf("sum of weights must be positive")
	}

	for i, category := range vocab {
		weights[category] = values[i] / total
	}
	return weights, nil
}

func newRand(cmd *cobra.Command) *rand.Rand {
	if cmd.Flags().Changed("seed") {
		return rand.New(rand.NewPCG(seedFlag, 0))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func printItinerary(itinerary []domain.DayPlan, vocab domain.Vocabulary) {
	for _, day := range itinerary {
		origin := day.TravelFrom
		if origin == "" {
			origin = "Start"
		}

		fmt.Printf("Day %d: %s -> %s", day.Day, origin, day.DisplayCity)
		if day.TravelMinutes > 0 {
			fmt.Printf(" (%.0f min travel)", day.TravelMinutes)
		}
		fmt.Println()

		if day.Note != "" {
			fmt.Printf("  Note: %s\n", day.Note)
		}
		printPOIs(day.POIs, vocab)
	}
}

func printPOIs(pois []*domain.POI, vocab domain.Vocabulary) {
	if len(pois) == 0 {
		fmt.Println("  (No matching POIs found)")
		fmt.Println()
		return
	}
	for _, poi := range pois {
		var categories []string
		for _, category := range vocab {
			if poi.HasLabel(category) {
				categories = append(categories, category)
			}
		}
		categoriesText := "no label matches"
		if len(categories) > 0 {
			categoriesText = strings.Join(categories, ", ")
		}

		fmt.Printf("  * %s (%s)\n", poi.Name, categoriesText)
		if poi.Abstract != "" {
			fmt.Printf("    Abstract: %s\n", poi.Abstract)
		}
		if len(poi.Seasons) > 0 {
			fmt.Printf("    Seasons: %s\n", strings.Join(poi.Seasons, ", "))
		}
		if poi.SeasonReason != "" {
			fmt.Printf("    Season reason: %s\n", poi.SeasonReason)
		}
		fmt.Println()
	}
}

func printScore(score domain.ScoreBreakdown) {
	fmt.Printf("Score: %.1f\n", score.Total)
	for _, violation := range score.HardViolations {
		fmt.Printf("  violation: %s\n", violation)
	}

	names := make([]string, 0, len(score.Components))
	for name := range score.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.3f\n", name, score.Components[name])
	}
}
