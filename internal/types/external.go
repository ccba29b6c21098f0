package types

// FindRecipesRequest represents the request body for an ingredient-matching search
type FindRecipesRequest struct {
	Ingredients []string `json:"ingredients"`
}
