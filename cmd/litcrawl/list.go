package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/litcrawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := litcrawl.ArticleFilter{
		Limit:  c.Limit,
		SortBy: litcrawl.ArticleSort(c.Sort),
	}
	if c.MinPopularity > 0 {
		filter.MinPopularity = &c.MinPopularity
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", litcrawl.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'litcrawl crawl' to collect some.")
		return nil
	}

	for i, a := range articles {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(deps.Stdout, "   %s\n", a.URL)
		fmt.Fprintf(deps.Stdout, "   popularity %d, published %s\n", a.InLinkPopularity, a.PublicationDate)
		if len(a.MatchedKeywords) > 0 {
			fmt.Fprintf(deps.Stdout, "   keywords: %s\n", strings.Join(a.MatchedKeywords, ", "))
		}
	}

	return nil
}
