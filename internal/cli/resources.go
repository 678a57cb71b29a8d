package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/resources"
)

func init() {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Browse mental-health support resources",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List resources, crisis support first",
		Run:   runResourcesList,
	}
	list.Flags().String("category", resources.CategoryAll, "Category filter, see \"resources categories\"")
	list.Flags().StringP("query", "q", "", "Match title, description or tags")

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List resource categories",
		Run:   runResourcesCategories,
	}

	fav := &cobra.Command{
		Use:   "fav <id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		Run:   runResourcesFav,
	}

	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite resources",
		Run:   runResourcesFavorites,
	}

	cmd.AddCommand(list, categories, fav, favorites)
	RootCmd.AddCommand(cmd)
}

func runResourcesList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	query, _ := cmd.Flags().GetString("query")

	found := resources.Filter(category, query)
	if textOutput() {
		printResources(os.Stdout, found)
		return
	}
	printJSON(found)
}

func runResourcesCategories(cmd *cobra.Command, args []string) {
	if textOutput() {
		fmt.Println(strings.Join(resources.Categories(), "\n"))
		return
	}
	printJSON(resources.Categories())
}

func runResourcesFav(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	favorite, err := a.favorites().Toggle(cmd.Context(), args[0])
	if err != nil {
		a.exitErr("fav", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"favorite":%t}`+"\n", args[0], favorite)
}

func runResourcesFavorites(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	favs, err := a.favorites().Resources(cmd.Context())
	if err != nil {
		a.exitErr("favorites", err)
	}
	if textOutput() {
		printResources(os.Stdout, favs)
		return
	}
	printJSON(favs)
}

func printResources(out io.Writer, rs []model.Resource) {
	if len(rs) == 0 {
		fmt.Fprintln(out, "no resources found")
		return
	}
	for _, r := range rs {
		fmt.Fprintf(out, "%s %s [%s]\n", r.Icon, r.Title, r.ID)
		fmt.Fprintf(out, "    %s\n", r.Description)
		if r.Contact != "" {
			fmt.Fprintf(out, "    contact: %s\n", r.Contact)
		}
		if r.URL != "" {
			fmt.Fprintf(out, "    %s\n", r.URL)
		}
	}
}
