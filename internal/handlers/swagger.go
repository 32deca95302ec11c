package handlers

// @title Serverless Blog API
// @version 1.0
// @description Create, read, list and delete records in a single key-value table

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

// @tag.name blog
// @tag.description Record operations

// @tag.name health
// @tag.description Liveness check
