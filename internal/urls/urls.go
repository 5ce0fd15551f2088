package urls

// Repository is the project home, shown in the terminal board header.
const Repository = "https://github.com/muurk/jeopardy"

// TriviaAPI is the public jService instance the board deals from by default.
const TriviaAPI = "https://jservice.io/"

// SelfHostedAPI is the jService source, for running a local copy when the
// public instance is down or rate limiting.
const SelfHostedAPI = "https://github.com/sottenad/jService"
