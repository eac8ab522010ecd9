// Package organize moves files from a source directory into category
// subdirectories of a target. It runs either as a one-shot batch over the
// source's current contents or as a watcher reacting to files as they
// arrive.
package organize
