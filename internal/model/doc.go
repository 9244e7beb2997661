// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of everything the composition
// engine reads and mutates: module definitions and base templates loaded from
// the library, and the configuration tree the engine walks.
//
// # Core Concepts
//
//   - Definition: the reusable "template" of a code fragment. It declares a
//     security role (Type), a data-flow Pattern, the taint flows it anchors and
//     the raw code snippets (Content) it contributes to the generated app.
//
//   - Template: the base application a configuration starts from. Its source,
//     manifest and layout texts contain the placeholders modules are rendered
//     into.
//
//   - Node: an "instance" of a Definition at one position of the configuration
//     tree. Nodes are created by the tree builder and mutated in place by each
//     stage of the engine until their content has been rendered.
//
//   - Tree: the rooted configuration tree with its breadth-first node order.
//
// Why a separate model package?
//
// Every stage of the engine (flow tracking, identifier scoping, placeholder
// management, rendering) works on the same Node. Keeping the types here lets
// those stages live in small packages that only depend on the model, not on
// each other or on the HCL library format.
package model
