package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/rohitroyrr8/pharma/contract"
)

func main() {
	cc, err := contractapi.NewChaincode(&contract.PharmanetSmartContract{})
	if err != nil {
		panic("Error creating PharmanetSmartContract: " + err.Error())
	}
	if err := cc.Start(); err != nil {
		panic("Error starting chaincode: " + err.Error())
	}
}
